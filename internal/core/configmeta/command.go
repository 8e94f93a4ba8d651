// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package configmeta

import (
	"github.com/taibuivan/learnpath/internal/platform/validate"
)

// UpdateConfigMeta sets the value of one setting.
type UpdateConfigMeta struct {
	Value string `json:"value"`
}

// Validate checks the value against what key accepts. key must be known.
func (c *UpdateConfigMeta) Validate(key Key) error {
	validator := &validate.Validator{}
	validator.OneOf("value", c.Value, settings[key].allowed...)
	return validator.Err()
}
