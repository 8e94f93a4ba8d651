// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/slice"
)

// Every step mutation is a mutation of the owning path: it produces the next path
// revision and goes through the same checker.

// # Step Lookups

// GetStep returns a path visible to principal together with one of its steps.
func (service *Service) GetStep(context context.Context, principal sec.Principal, pathID, stepID int64) (*LearningPath, *LearningStep, error) {
	path, err := service.loadVisible(context, principal, pathID)
	if err != nil {
		return nil, nil, err
	}

	step := path.Step(stepID)
	if step == nil {
		return nil, nil, apperr.NotFound("Learning step").WithEntity(stepID)
	}
	return path, step, nil
}

// ListSteps returns a path visible to principal. Its steps are ordered by seqNo.
func (service *Service) ListSteps(context context.Context, principal sec.Principal, pathID int64) (*LearningPath, error) {
	return service.loadVisible(context, principal, pathID)
}

// # Step Management

/*
AddStep appends a new step at the end of the path.

Parameters:
  - context: context.Context
  - principal: sec.Principal (Must be able to edit the path)
  - pathID: int64
  - command: NewLearningStepV2

Returns:
  - *LearningPath: The new path revision
  - *LearningStep: The stored step with its id
  - error: Validation, consistency or persistence errors
*/
func (service *Service) AddStep(context context.Context, principal sec.Principal, pathID int64, command NewLearningStepV2) (*LearningPath, *LearningStep, error) {
	if err := command.Validate(); err != nil {
		return nil, nil, err
	}

	prior, err := service.loadEditable(context, principal, pathID)
	if err != nil {
		return nil, nil, err
	}

	lang := canonical(command.Language)
	step := LearningStep{
		Revision:  1,
		SeqNo:     len(prior.LearningSteps),
		Titles:    []language.Title{{Title: command.Title, Language: lang}},
		ShowTitle: command.ShowTitle,
		Type:      command.Type,
		Status:    StepStatusActive,
	}
	if command.Description != nil && *command.Description != "" {
		step.Descriptions = []language.Description{{Description: *command.Description, Language: lang}}
	}
	if command.EmbedURL != nil {
		step.EmbedURLs = []EmbedURL{{URL: command.EmbedURL.URL, EmbedType: command.EmbedURL.EmbedType, Language: lang}}
	}
	if command.License != nil {
		license := command.License.WithDefaults()
		step.License = &license
	}

	candidate := successor(prior)
	candidate.LearningSteps = append(candidate.LearningSteps, step)

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, nil, err
	}

	stored := &candidate.LearningSteps[len(candidate.LearningSteps)-1]
	service.logger.InfoContext(context, "learningstep_created",
		slog.Int64("path_id", pathID),
		slog.Int64("step_id", stored.ID),
		slog.Int("seq_no", stored.SeqNo),
	)
	return candidate, stored, nil
}

/*
UpdateStep applies a language-scoped patch to one step.

Description: The command carries the step revision the client read. An empty
description or embed URL removes that payload for the language.
*/
func (service *Service) UpdateStep(context context.Context, principal sec.Principal, pathID, stepID int64, command UpdateLearningStepV2) (*LearningPath, *LearningStep, error) {
	if err := command.Validate(); err != nil {
		return nil, nil, err
	}

	prior, candidate, step, err := service.editStep(context, principal, pathID, stepID)
	if err != nil {
		return nil, nil, err
	}

	stored := prior.Step(stepID)
	if command.Revision != stored.Revision {
		return nil, nil, apperr.StaleRevision(command.Revision, stored.Revision).WithEntity(stepID)
	}

	lang := canonical(command.Language)
	step.Revision = stored.Revision + 1

	if command.Title != nil {
		step.Titles = upsert(step.Titles, language.Title{Title: *command.Title, Language: lang})
	}
	if command.Description != nil {
		if *command.Description == "" {
			step.Descriptions = remove(step.Descriptions, lang)
		} else {
			step.Descriptions = upsert(step.Descriptions, language.Description{Description: *command.Description, Language: lang})
		}
	}
	if command.EmbedURL != nil {
		if command.EmbedURL.URL == "" {
			step.EmbedURLs = remove(step.EmbedURLs, lang)
		} else {
			step.EmbedURLs = upsert(step.EmbedURLs, EmbedURL{URL: command.EmbedURL.URL, EmbedType: command.EmbedURL.EmbedType, Language: lang})
		}
	}
	if command.ShowTitle != nil {
		step.ShowTitle = *command.ShowTitle
	}
	if command.Type != nil {
		step.Type = *command.Type
	}
	if command.License != nil {
		license := command.License.WithDefaults()
		step.License = &license
	}

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, nil, err
	}

	service.logger.InfoContext(context, "learningstep_updated",
		slog.Int64("path_id", pathID),
		slog.Int64("step_id", stepID),
		slog.Int("revision", step.Revision),
	)
	return candidate, step, nil
}

// UpdateStepStatus changes the editorial status of one step.
func (service *Service) UpdateStepStatus(context context.Context, principal sec.Principal, pathID, stepID int64, command UpdateLearningStepStatus) (*LearningPath, *LearningStep, error) {
	if err := command.Validate(); err != nil {
		return nil, nil, err
	}

	prior, candidate, step, err := service.editStep(context, principal, pathID, stepID)
	if err != nil {
		return nil, nil, err
	}

	step.Status = command.Status
	step.Revision = prior.Step(stepID).Revision + 1

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, nil, err
	}

	service.logger.InfoContext(context, "learningstep_status_changed",
		slog.Int64("path_id", pathID),
		slog.Int64("step_id", stepID),
		slog.String("status", string(step.Status)),
	)
	return candidate, step, nil
}

/*
ReorderStep moves one step to a new seqNo.

Description: Siblings between the old and new position shift by one. The whole
sequence is renumbered and re-validated in the same revision.
*/
func (service *Service) ReorderStep(context context.Context, principal sec.Principal, pathID, stepID int64, command UpdateLearningStepSeqNo) (*LearningPath, *LearningStep, error) {
	prior, candidate, _, err := service.editStep(context, principal, pathID, stepID)
	if err != nil {
		return nil, nil, err
	}

	count := len(candidate.LearningSteps)
	if command.SeqNo < 0 || command.SeqNo >= count {
		return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldSeqNo,
			Message: fmt.Sprintf("Must be between 0 and %d", count-1),
		})
	}

	ordered := orderedSteps(candidate.LearningSteps)
	from := 0
	for i, step := range ordered {
		if step.ID == stepID {
			from = i
			break
		}
	}

	moved := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	ordered = append(ordered[:command.SeqNo], append([]*LearningStep{moved}, ordered[command.SeqNo:]...)...)

	candidate.LearningSteps = renumber(ordered)

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, nil, err
	}

	service.logger.InfoContext(context, "learningstep_reordered",
		slog.Int64("path_id", pathID),
		slog.Int64("step_id", stepID),
		slog.Int("from", from),
		slog.Int("to", command.SeqNo),
	)
	return candidate, candidate.Step(stepID), nil
}

// DeleteStep removes one step and closes the gap it leaves in the sequence.
func (service *Service) DeleteStep(context context.Context, principal sec.Principal, pathID, stepID int64) (*LearningPath, error) {
	prior, candidate, _, err := service.editStep(context, principal, pathID, stepID)
	if err != nil {
		return nil, err
	}

	remaining := slice.Filter(orderedSteps(candidate.LearningSteps), func(step *LearningStep) bool {
		return step.ID != stepID
	})
	candidate.LearningSteps = renumber(remaining)

	if err := service.commit(context, candidate, prior); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "learningstep_deleted",
		slog.Int64("path_id", pathID),
		slog.Int64("step_id", stepID),
	)
	return candidate, nil
}

// # Helpers

// editStep loads an editable path and prepares the next revision with a handle on stepID.
func (service *Service) editStep(context context.Context, principal sec.Principal, pathID, stepID int64) (*LearningPath, *LearningPath, *LearningStep, error) {
	prior, err := service.loadEditable(context, principal, pathID)
	if err != nil {
		return nil, nil, nil, err
	}
	if prior.Step(stepID) == nil {
		return nil, nil, nil, apperr.NotFound("Learning step").WithEntity(stepID)
	}

	candidate := successor(prior)
	return prior, candidate, candidate.Step(stepID), nil
}

// renumber copies ordered steps into a fresh slice with seqNo 0..n-1.
func renumber(ordered []*LearningStep) []LearningStep {
	steps := make([]LearningStep, len(ordered))
	for i, step := range ordered {
		steps[i] = *step
		steps[i].SeqNo = i
	}
	return steps
}
