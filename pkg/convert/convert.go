// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses query-string values without reporting errors.

A malformed value is treated like an absent one. Use [strconv] directly when
the caller must tell the two apart.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt converts s to an int. Empty or malformed input yields 0.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD converts s to an int, returning def when s is empty or malformed.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}

// ToInt64 converts s to an int64. Empty or malformed input yields 0.
func ToInt64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToBool parses "true", "1", "false", "0" and the other forms [strconv.ParseBool] accepts.
// Anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
