// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"sort"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

// Missing publication requirements, in the order they are checked.
const (
	MissingSteps      = "learningsteps"
	MissingLicense    = "license"
	MissingStepStatus = "learningsteps.status"
)

// Checker accepts or rejects a candidate learning path.
//
// It holds no mutable state and may be shared between goroutines.
type Checker struct {
	parity language.Parity
}

// NewChecker constructs a [Checker] enforcing the parity rules of policy.
func NewChecker(policy language.Policy) *Checker {
	return &Checker{parity: policy.Parity}
}

/*
Validate checks a candidate against its prior revision.

Description: The checks run in a fixed order and the first failure is returned,
so the same input always yields the same error:

 1. language set
 2. revision
 3. isBasedOn
 4. step order
 5. step payload
 6. status transition
 7. publication readiness (only when the target status is PUBLISHED)

Parameters:
  - candidate: *LearningPath (The entity to accept)
  - prior: *LearningPath (The stored revision, nil on create)

Returns:
  - error: nil when the candidate is valid, otherwise an [*apperr.AppError]
*/
func (checker *Checker) Validate(candidate, prior *LearningPath) error {
	steps := []func(candidate, prior *LearningPath) *apperr.AppError{
		checker.checkLanguages,
		checkRevision,
		checkBasedOn,
		checkStepOrder,
		checkStepPayload,
		checkStatus,
		checkPublishable,
	}

	for _, step := range steps {
		if err := step(candidate, prior); err != nil {
			if err.EntityID == nil && candidate.ID != 0 {
				err.WithEntity(candidate.ID)
			}
			return err
		}
	}
	return nil
}

// # Individual Checks

func (checker *Checker) checkLanguages(candidate, _ *LearningPath) *apperr.AppError {
	computed, err := language.ComputeSupportedLanguages(candidate, checker.parity)
	if err != nil {
		return apperr.As(err)
	}

	if len(computed) == 0 || !language.EqualSets(candidate.SupportedLanguages, computed) {
		return apperr.LanguageSetMismatch(candidate.SupportedLanguages, computed)
	}
	if err := language.ConfineToSupported(candidate.IntroductionLanguages(), computed, language.GroupTitle); err != nil {
		return apperr.As(err)
	}

	for i := range candidate.LearningSteps {
		step := &candidate.LearningSteps[i]
		if _, err := language.ComputeSupportedLanguages(step, checker.parity); err != nil {
			return stepError(apperr.As(err), step)
		}
	}
	return nil
}

func checkRevision(candidate, prior *LearningPath) *apperr.AppError {
	if prior == nil {
		if candidate.Revision != 1 {
			return apperr.InvalidRevision(candidate.Revision)
		}
		for i := range candidate.LearningSteps {
			step := &candidate.LearningSteps[i]
			if step.Revision != 1 {
				return stepError(apperr.InvalidRevision(step.Revision), step)
			}
		}
		return nil
	}

	if candidate.Revision != prior.Revision+1 {
		return apperr.StaleRevision(candidate.Revision, prior.Revision+1)
	}

	// A step is either new (revision 1), untouched, or edited once per path revision
	for i := range candidate.LearningSteps {
		step := &candidate.LearningSteps[i]
		stored := prior.Step(step.ID)
		switch {
		case stored == nil || step.ID == 0:
			if step.Revision != 1 {
				return stepError(apperr.InvalidRevision(step.Revision), step)
			}
		case step.Revision != stored.Revision && step.Revision != stored.Revision+1:
			return stepError(apperr.StaleRevision(step.Revision, stored.Revision+1), step)
		}
	}
	return nil
}

func checkBasedOn(candidate, _ *LearningPath) *apperr.AppError {
	if candidate.IsBasedOn != nil && *candidate.IsBasedOn == candidate.ID {
		return apperr.InvalidBasedOn(candidate.ID)
	}
	return nil
}

func checkStepOrder(candidate, _ *LearningPath) *apperr.AppError {
	seqNos := make([]int, len(candidate.LearningSteps))
	for i, step := range candidate.LearningSteps {
		seqNos[i] = step.SeqNo
	}
	sort.Ints(seqNos)

	for expected, seqNo := range seqNos {
		if seqNo != expected {
			return apperr.InvalidStepOrder(seqNo)
		}
	}
	return nil
}

func checkStepPayload(candidate, _ *LearningPath) *apperr.AppError {
	for _, step := range orderedSteps(candidate.LearningSteps) {
		hasDescription := len(step.Descriptions) > 0
		hasEmbed := len(step.EmbedURLs) > 0

		switch {
		case hasDescription && hasEmbed:
			return stepError(apperr.AmbiguousStepPayload("step has both description and embedUrl"), step)
		case step.Type == StepTypeText && hasEmbed:
			return stepError(apperr.AmbiguousStepPayload("TEXT step carries an embedUrl"), step)
		case step.Type.RequiresEmbed() && hasDescription:
			return stepError(apperr.AmbiguousStepPayload(string(step.Type)+" step carries a description"), step)
		case step.Type.RequiresEmbed() && !hasEmbed:
			return stepError(apperr.EmptyStepPayload(string(step.Type)), step)
		}
	}
	return nil
}

func checkStatus(candidate, prior *LearningPath) *apperr.AppError {
	var from *Status
	if prior != nil {
		from = &prior.Status
	}

	if !CanTransition(from, candidate.Status) {
		fromName := ""
		if from != nil {
			fromName = string(*from)
		}
		return apperr.IllegalStatusTransition(fromName, string(candidate.Status))
	}
	return nil
}

func checkPublishable(candidate, _ *LearningPath) *apperr.AppError {
	if candidate.Status != StatusPublished {
		return nil
	}

	if len(candidate.LearningSteps) == 0 {
		return apperr.NotReadyToPublish(MissingSteps)
	}
	if !candidate.Copyright.License.Publishable() {
		return apperr.NotReadyToPublish(MissingLicense)
	}
	for _, step := range orderedSteps(candidate.LearningSteps) {
		if step.Status != StepStatusActive {
			return stepError(apperr.NotReadyToPublish(MissingStepStatus), step)
		}
	}
	return nil
}

// # Helpers

// orderedSteps returns pointers to steps sorted by seqNo without reordering the input.
func orderedSteps(steps []LearningStep) []*LearningStep {
	ordered := make([]*LearningStep, len(steps))
	for i := range steps {
		ordered[i] = &steps[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SeqNo < ordered[j].SeqNo })
	return ordered
}

// stepError attributes err to a persisted step.
func stepError(err *apperr.AppError, step *LearningStep) *apperr.AppError {
	if err != nil && step.ID != 0 {
		err.WithEntity(step.ID)
	}
	return err
}
