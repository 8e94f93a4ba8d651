// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strings"

	"github.com/taibuivan/learnpath/pkg/convert"
)

// StringSlice splits a comma-separated value into trimmed, non-empty parts.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// IDs parses a comma-separated list of positive identifiers ("3,5,8").
// Malformed and non-positive entries are skipped.
func IDs(val string) []int64 {
	var ids []int64
	for _, part := range StringSlice(val) {
		if id := convert.ToInt64(part); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
