// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/pointer"
)

// # Service Layer

// LanguageCatalogue verifies language tags against the registered languages.
type LanguageCatalogue interface {
	EnsureKnown(context context.Context, tags []string) error
}

// WriteGate reports whether learning path writes are restricted to moderators.
type WriteGate interface {
	WriteRestricted(context context.Context) (bool, error)
}

// Service orchestrates every mutation of a learning path.
//
// Each mutation builds a full candidate aggregate from the stored one, derives its
// supported languages, runs the [Checker] and only then hands it to the [Repository].
type Service struct {
	repo      Repository
	languages LanguageCatalogue
	gate      WriteGate
	checker   *Checker
	policy    language.Policy
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new learning path [Service].
func NewService(repo Repository, languages LanguageCatalogue, gate WriteGate, policy language.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		languages: languages,
		gate:      gate,
		checker:   NewChecker(policy),
		policy:    policy,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Fallback returns the language used when a requested translation is missing.
func (service *Service) Fallback() string {
	return service.policy.Fallback
}

// # Access Rules

// CanEdit reports whether principal may modify path: its owner, or any moderator.
// It is evaluated per request and never stored.
func CanEdit(path *LearningPath, principal sec.Principal) bool {
	if principal.IsAnonymous() {
		return false
	}
	return principal.IsModerator() || principal.Owns(path.OwnerID)
}

// canView reports whether principal may read path.
func canView(path *LearningPath, principal sec.Principal) bool {
	switch path.Status {
	case StatusPublished, StatusUnlisted:
		return true
	}
	return CanEdit(path, principal)
}

func (service *Service) loadVisible(context context.Context, principal sec.Principal, id int64) (*LearningPath, error) {
	path, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !canView(path, principal) {
		return nil, apperr.Forbidden("You do not have access to the requested learning path").WithEntity(id)
	}
	return path, nil
}

// ensureWritable rejects writes by non-moderators while the write restriction is on.
func (service *Service) ensureWritable(context context.Context, principal sec.Principal) error {
	if principal.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}
	if principal.IsModerator() {
		return nil
	}

	restricted, err := service.gate.WriteRestricted(context)
	if err != nil {
		return err
	}
	if restricted {
		service.logger.InfoContext(context, "learningpath_write_restricted", slog.String("user_id", principal.UserID))
		return apperr.Forbidden("Learning paths are read-only while write restriction is active")
	}
	return nil
}

func (service *Service) loadEditable(context context.Context, principal sec.Principal, id int64) (*LearningPath, error) {
	if err := service.ensureWritable(context, principal); err != nil {
		return nil, err
	}

	path, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !CanEdit(path, principal) {
		return nil, apperr.Forbidden("You do not have permission to edit this learning path").WithEntity(id)
	}
	return path, nil
}

// # Consistency Pipeline

// prepare derives the language set of candidate and runs the checker.
func (service *Service) prepare(context context.Context, candidate, prior *LearningPath) error {
	supported, err := language.ComputeSupportedLanguages(candidate, service.policy.Parity)
	if err != nil {
		return err
	}
	candidate.SupportedLanguages = supported

	if err := service.languages.EnsureKnown(context, supported); err != nil {
		return err
	}

	if err := service.checker.Validate(candidate, prior); err != nil {
		service.logger.DebugContext(context, "learningpath_rejected",
			slog.Int64("id", candidate.ID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// commit validates candidate and stores it as the successor of prior (nil on create).
func (service *Service) commit(context context.Context, candidate, prior *LearningPath) error {
	if err := service.prepare(context, candidate, prior); err != nil {
		return err
	}
	if prior == nil {
		return service.repo.Create(context, candidate)
	}
	return service.repo.Update(context, candidate, prior.Revision)
}

// successor returns a copy of prior at the next revision.
func successor(prior *LearningPath) *LearningPath {
	candidate := prior.Clone()
	candidate.Revision = prior.Revision + 1
	return candidate
}

// # Path Lookups

// GetPath returns a path visible to principal.
func (service *Service) GetPath(context context.Context, principal sec.Principal, id int64) (*LearningPath, error) {
	return service.loadVisible(context, principal, id)
}

/*
SearchPaths lists published paths.

Parameters:
  - context: context.Context
  - filter: SearchFilter (Query, language, tag, paging, sort)

Returns:
  - []*LearningPath: Paths without steps
  - int: Total matches
  - error: Validation or repository errors
*/
func (service *Service) SearchPaths(context context.Context, filter SearchFilter) ([]*LearningPath, int, error) {
	if filter.Sort == "" {
		filter.Sort = SortLastUpdatedDesc
	}
	if !filter.Sort.IsValid() {
		return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "sort", Message: "Unknown sort order"})
	}

	if filter.Language == language.Wildcard {
		filter.Language = ""
	}
	if filter.Language != "" {
		tag, err := language.Canonical(filter.Language)
		if err != nil {
			return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "language", Message: err.Error()})
		}
		filter.Language = tag
	}

	return service.repo.Search(context, filter)
}

// ListTags returns the tags of published paths grouped by language.
func (service *Service) ListTags(context context.Context) ([]language.Tags, error) {
	return service.repo.ListTags(context)
}

// ListMine returns the paths owned by principal.
func (service *Service) ListMine(context context.Context, principal sec.Principal, limit, offset int) ([]*LearningPath, int, error) {
	if principal.IsAnonymous() {
		return nil, 0, apperr.Unauthorized("Authentication required")
	}
	return service.repo.ListByOwner(context, principal.UserID, limit, offset)
}

// # Path Management

/*
CreatePath stores a new path owned by principal.

Description: The path starts at revision 1 in PRIVATE (or PLANNED when requested)
with a single language. Publishing later requires steps and a license.

Parameters:
  - context: context.Context
  - principal: sec.Principal (Becomes the owner)
  - command: NewLearningPathV2

Returns:
  - *LearningPath: The stored aggregate with its id
  - error: Validation, consistency or persistence errors
*/
func (service *Service) CreatePath(context context.Context, principal sec.Principal, command NewLearningPathV2) (*LearningPath, error) {
	if err := service.ensureWritable(context, principal); err != nil {
		return nil, err
	}
	if err := command.Validate(); err != nil {
		return nil, err
	}

	lang := canonical(command.Language)
	status := StatusPrivate
	if command.Status != nil {
		status = *command.Status
	}

	path := &LearningPath{
		Revision:           1,
		Titles:             []language.Title{{Title: command.Title, Language: lang}},
		Descriptions:       []language.Description{{Description: command.Description, Language: lang}},
		LearningSteps:      []LearningStep{},
		CoverPhotoURL:      command.CoverPhotoURL,
		Duration:           command.Duration,
		Status:             status,
		VerificationStatus: VerificationCreated,
		OwnerID:            pointer.To(principal.UserID),
	}

	if command.Introduction != nil && *command.Introduction != "" {
		path.Introductions = []language.Introduction{{Introduction: *command.Introduction, Language: lang}}
	}
	if tags := language.DedupeTags(command.Tags); len(tags) > 0 {
		path.Tags = []language.Tags{{Tags: tags, Language: lang}}
	}
	if command.Copyright != nil {
		path.Copyright = normaliseCopyright(*command.Copyright)
	}

	if err := service.commit(context, path, nil); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningpath_created",
		slog.Int64("id", path.ID),
		slog.String("owner", principal.UserID),
		slog.String("language", lang),
	)
	return path, nil
}

/*
UpdatePath applies a language-scoped patch.

Description: Text fields in the command are written for command.Language, adding
a translation when the path did not have that language yet. The command carries
the revision the client read; if the path moved on the update fails STALE_REVISION.
*/
func (service *Service) UpdatePath(context context.Context, principal sec.Principal, id int64, command UpdateLearningPathV2) (*LearningPath, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	prior, err := service.loadEditable(context, principal, id)
	if err != nil {
		return nil, err
	}

	lang := canonical(command.Language)
	candidate := prior.Clone()
	candidate.Revision = command.Revision + 1

	if command.Title != nil {
		candidate.Titles = upsert(candidate.Titles, language.Title{Title: *command.Title, Language: lang})
	}
	if command.Description != nil {
		candidate.Descriptions = upsert(candidate.Descriptions, language.Description{Description: *command.Description, Language: lang})
	}
	if command.Introduction != nil {
		if *command.Introduction == "" {
			candidate.Introductions = remove(candidate.Introductions, lang)
		} else {
			candidate.Introductions = upsert(candidate.Introductions, language.Introduction{Introduction: *command.Introduction, Language: lang})
		}
	}
	if command.Tags != nil {
		if tags := language.DedupeTags(*command.Tags); len(tags) > 0 {
			candidate.Tags = upsert(candidate.Tags, language.Tags{Tags: tags, Language: lang})
		} else {
			candidate.Tags = remove(candidate.Tags, lang)
		}
	}
	if command.CoverPhotoURL != nil {
		candidate.CoverPhotoURL = command.CoverPhotoURL
		if *command.CoverPhotoURL == "" {
			candidate.CoverPhotoURL = nil
		}
	}
	if command.Duration != nil {
		candidate.Duration = command.Duration
	}
	if command.Copyright != nil {
		candidate.Copyright = normaliseCopyright(*command.Copyright)
	}

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningpath_updated",
		slog.Int64("id", id),
		slog.Int("revision", candidate.Revision),
		slog.String("language", lang),
	)
	return candidate, nil
}

/*
UpdatePathStatus moves a path through its lifecycle.

Description: Moderators may attach a message that the owner sees on the path.
Moving to DELETED removes the path like [Service.DeletePath].
*/
func (service *Service) UpdatePathStatus(context context.Context, principal sec.Principal, id int64, command UpdateLearningPathStatus) (*LearningPath, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	prior, err := service.loadEditable(context, principal, id)
	if err != nil {
		return nil, err
	}
	if command.Message != nil && !principal.IsModerator() {
		return nil, apperr.Forbidden("Only moderators may attach a message").WithEntity(id)
	}

	candidate := successor(prior)
	candidate.Status = command.Status
	if command.Message != nil {
		candidate.Message = &Message{Message: *command.Message, Date: service.now()}
	}

	if command.Status == StatusDeleted {
		if err := service.destroy(context, candidate, prior); err != nil {
			return nil, err
		}
		return candidate, nil
	}

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningpath_status_changed",
		slog.Int64("id", id),
		slog.String("from", string(prior.Status)),
		slog.String("to", string(candidate.Status)),
	)
	return candidate, nil
}

// UpdateVerification records a moderator review. It bumps the revision like any edit.
func (service *Service) UpdateVerification(context context.Context, principal sec.Principal, id int64, command UpdateLearningPathVerification) (*LearningPath, error) {
	if !principal.IsModerator() {
		return nil, apperr.Forbidden("Only moderators may verify learning paths").WithEntity(id)
	}
	if err := command.Validate(); err != nil {
		return nil, err
	}

	prior, err := service.loadEditable(context, principal, id)
	if err != nil {
		return nil, err
	}

	candidate := successor(prior)
	candidate.VerificationStatus = command.VerificationStatus

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningpath_verification_changed",
		slog.Int64("id", id),
		slog.String("verification_status", string(candidate.VerificationStatus)),
		slog.String("moderator", principal.UserID),
	)
	return candidate, nil
}

/*
CopyPath creates a private copy of a visible path owned by principal.

Description: The copy gets a new id, revision 1, isBasedOn pointing at the source
and copies of every step. An optional title replaces the title in one language.
*/
func (service *Service) CopyPath(context context.Context, principal sec.Principal, id int64, command CopyLearningPathV2) (*LearningPath, error) {
	if err := service.ensureWritable(context, principal); err != nil {
		return nil, err
	}
	if err := command.Validate(); err != nil {
		return nil, err
	}

	source, err := service.loadVisible(context, principal, id)
	if err != nil {
		return nil, err
	}

	owner := principal.UserID
	sourceID := source.ID

	candidate := source.Clone()
	candidate.ID = 0
	candidate.Revision = 1
	candidate.IsBasedOn = &sourceID
	candidate.Status = StatusPrivate
	candidate.VerificationStatus = VerificationCreated
	candidate.OwnerID = pointer.To(owner)
	candidate.Message = nil
	for i := range candidate.LearningSteps {
		candidate.LearningSteps[i].ID = 0
		candidate.LearningSteps[i].Revision = 1
	}

	if command.Title != nil {
		lang := service.policy.Fallback
		if command.Language != "" {
			lang = canonical(command.Language)
		}
		candidate.Titles = upsert(candidate.Titles, language.Title{Title: *command.Title, Language: lang})
	}

	if err := service.commit(context, candidate, nil); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningpath_copied",
		slog.Int64("id", candidate.ID),
		slog.Int64("based_on", sourceID),
		slog.String("owner", owner),
	)
	return candidate, nil
}

/*
DeletePath removes a path with its revisions and steps.

Description: The move to DELETED is checked like any other transition before the
rows are removed.
*/
func (service *Service) DeletePath(context context.Context, principal sec.Principal, id int64) error {
	prior, err := service.loadEditable(context, principal, id)
	if err != nil {
		return err
	}

	candidate := successor(prior)
	candidate.Status = StatusDeleted
	return service.destroy(context, candidate, prior)
}

func (service *Service) destroy(context context.Context, candidate, prior *LearningPath) error {
	if err := service.prepare(context, candidate, prior); err != nil {
		return err
	}
	if err := service.repo.Delete(context, prior.ID, prior.Revision); err != nil {
		return err
	}

	service.logger.InfoContext(context, "learningpath_deleted",
		slog.Int64("id", prior.ID),
		slog.Int("revision", prior.Revision),
	)
	return nil
}

// # Helpers

// canonical returns the canonical form of a tag that already passed validation.
func canonical(tag string) string {
	if normalised, err := language.Canonical(tag); err == nil {
		return normalised
	}
	return tag
}

// upsert replaces the field in value's language or appends value.
func upsert[T language.Tagged](fields []T, value T) []T {
	for i, field := range fields {
		if language.Same(field.LanguageTag(), value.LanguageTag()) {
			fields[i] = value
			return fields
		}
	}
	return append(fields, value)
}

// remove drops the field written in lang.
func remove[T language.Tagged](fields []T, lang string) []T {
	result := fields[:0]
	for _, field := range fields {
		if !language.Same(field.LanguageTag(), lang) {
			result = append(result, field)
		}
	}
	return result
}

func normaliseCopyright(copyright Copyright) Copyright {
	copyright.License = copyright.License.WithDefaults()
	if copyright.Contributors == nil {
		copyright.Contributors = []Author{}
	}
	return copyright
}
