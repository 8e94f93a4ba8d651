// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"strings"

	"github.com/taibuivan/learnpath/pkg/slug"
)

// DedupeTags trims tag values and drops blanks and tags whose slug was already seen.
// The first spelling of a tag wins.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := slug.From(tag)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tag)
	}

	return result
}
