// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package configmeta

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

// Service reads and writes runtime settings.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new configmeta [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func unknownKey(key Key) error {
	return apperr.NotFound(fmt.Sprintf("Config key '%s'", key)).WithField("key")
}

// Get returns the setting, or its default when it was never written.
func (service *Service) Get(context context.Context, key Key) (*ConfigMeta, error) {
	if _, ok := settings[key]; !ok {
		return nil, unknownKey(key)
	}

	meta, err := service.repo.Get(context, key)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return defaultMeta(key), nil
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// List returns every known setting in key order, defaults included.
func (service *Service) List(context context.Context) ([]*ConfigMeta, error) {
	stored, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	byKey := make(map[Key]*ConfigMeta, len(stored))
	for _, meta := range stored {
		byKey[meta.Key] = meta
	}

	metas := make([]*ConfigMeta, 0, len(settings))
	for _, key := range Keys() {
		if meta, ok := byKey[key]; ok {
			metas = append(metas, meta)
			continue
		}
		metas = append(metas, defaultMeta(key))
	}
	return metas, nil
}

/*
Set stores a new value for a known setting.

Parameters:
  - principal: sec.Principal (Must be a moderator; recorded as updatedBy)
  - key: Key
  - command: UpdateConfigMeta

Returns:
  - *ConfigMeta: The stored setting
  - error: FORBIDDEN, NOT_FOUND for unknown keys, VALIDATION_ERROR for values the key does not accept
*/
func (service *Service) Set(context context.Context, principal sec.Principal, key Key, command UpdateConfigMeta) (*ConfigMeta, error) {
	if principal.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}
	if !principal.IsModerator() {
		return nil, apperr.Forbidden("Only moderators may change runtime settings")
	}
	if _, ok := settings[key]; !ok {
		return nil, unknownKey(key)
	}
	if err := command.Validate(key); err != nil {
		return nil, err
	}

	meta := &ConfigMeta{
		Key:       key,
		Value:     command.Value,
		UpdatedAt: service.now(),
		UpdatedBy: principal.UserID,
	}
	if err := service.repo.Save(context, meta); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "configmeta_changed",
		slog.String("key", string(key)),
		slog.String("value", meta.Value),
		slog.String("updated_by", meta.UpdatedBy),
	)
	return meta, nil
}

// WriteRestricted reports whether learning path writes are limited to moderators.
func (service *Service) WriteRestricted(context context.Context) (bool, error) {
	meta, err := service.Get(context, KeyLearningPathWriteRestricted)
	if err != nil {
		return false, err
	}
	return meta.Value == "true", nil
}
