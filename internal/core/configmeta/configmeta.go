// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package configmeta stores runtime settings that moderators change without a redeploy.

Only known keys can be read or written. A key that was never written reads as its default.
*/
package configmeta

import (
	"maps"
	"slices"
	"time"
)

// Key names a runtime setting.
type Key string

const (
	// KeyLearningPathWriteRestricted limits learning path writes to moderators while "true".
	KeyLearningPathWriteRestricted Key = "LEARNINGPATH_WRITE_RESTRICTED"
)

// ConfigMeta is the current value of one setting and who set it.
type ConfigMeta struct {
	Key       Key       `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// setting describes a known key. The first allowed value is the default.
type setting struct {
	allowed []string
}

var settings = map[Key]setting{
	KeyLearningPathWriteRestricted: {allowed: []string{"false", "true"}},
}

// Keys returns every known key in sorted order.
func Keys() []Key {
	return slices.Sorted(maps.Keys(settings))
}

// defaultMeta is the value a known key reads as before anyone writes it.
func defaultMeta(key Key) *ConfigMeta {
	return &ConfigMeta{Key: key, Value: settings[key].allowed[0]}
}
