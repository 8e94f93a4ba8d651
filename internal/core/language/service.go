// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

// Service exposes the language catalogue and the active language [Policy].
type Service struct {
	repo   Repository
	policy Policy
	logger *slog.Logger
}

// NewService constructs a new language [Service].
func NewService(repo Repository, policy Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// Policy returns the language policy the service was built with.
func (service *Service) Policy() Policy {
	return service.policy
}

// ListLanguages returns every registered language.
func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

// GetLanguage returns one registered language by code.
func (service *Service) GetLanguage(context context.Context, code string) (*Language, error) {
	return service.repo.GetLanguageByCode(context, code)
}

/*
EnsureKnown verifies that every tag is registered in the catalogue.

Parameters:
  - context: context.Context
  - tags: []string (Canonical tags, usually a computed supportedLanguages set)

Returns:
  - error: VALIDATION_ERROR listing each unknown tag
*/
func (service *Service) EnsureKnown(context context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	langs, err := service.repo.ListLanguages(context)
	if err != nil {
		return err
	}

	var details []apperr.FieldError
	for _, tag := range tags {
		known := false
		for _, lang := range langs {
			if Same(lang.Code, tag) {
				known = true
				break
			}
		}
		if !known {
			details = append(details, apperr.FieldError{
				Field:   "supportedLanguages",
				Message: fmt.Sprintf("Language '%s' is not registered", tag),
			})
		}
	}

	if len(details) > 0 {
		service.logger.WarnContext(context, "unknown_language_rejected", slog.Any("tags", tags))
		return apperr.ValidationError("Unsupported language", details...)
	}

	return nil
}
