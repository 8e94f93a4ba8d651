// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package configmeta

import "context"

// Repository defines the data access contract for runtime settings.
type Repository interface {
	// Get returns a stored setting or NOT_FOUND when it was never written.
	Get(context context.Context, key Key) (*ConfigMeta, error)
	List(context context.Context) ([]*ConfigMeta, error)
	// Save inserts or replaces the setting.
	Save(context context.Context, meta *ConfigMeta) error
}
