// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package learningpath defines the learning path aggregate and the rules that keep it coherent.

A learning path is an ordered sequence of learning steps with multi-language titles,
descriptions and tags. Every accepted mutation produces a new revision, and the status
field gates publication.

Core Responsibility:

  - Model: the persisted aggregate ([LearningPath], [LearningStep]) and its closed enums.
  - Consistency: [Checker] accepts or rejects a candidate against its prior revision.
  - Projection: read views (V2) computed per language and per requesting principal.
  - Orchestration: [Service] runs the checker before any storage handoff.
*/
package learningpath

import (
	"time"

	"github.com/taibuivan/learnpath/internal/core/language"
)

// # Domain Enums

// Status is the visibility state of a learning path.
type Status string

const (
	// StatusPrivate is visible to the owner and moderators only.
	StatusPrivate Status = "PRIVATE"

	// StatusPublished is listed in search and visible to everyone.
	StatusPublished Status = "PUBLISHED"

	// StatusUnlisted is reachable by link but excluded from search.
	StatusUnlisted Status = "UNLISTED"

	// StatusPlanned is a placeholder for a path that has not been written yet.
	StatusPlanned Status = "PLANNED"

	// StatusDeleted is terminal. No transition leaves it.
	StatusDeleted Status = "DELETED"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPrivate, StatusPublished, StatusUnlisted, StatusPlanned, StatusDeleted:
		return true
	}
	return false
}

// VerificationStatus reflects the review state of externally sourced content.
type VerificationStatus string

const (
	VerificationCreated  VerificationStatus = "CREATED"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationExternal VerificationStatus = "EXTERNAL"
)

// IsValid reports whether v is a recognised [VerificationStatus] value.
func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationCreated, VerificationVerified, VerificationExternal:
		return true
	}
	return false
}

// StepType determines which payload a learning step carries.
type StepType string

const (
	// StepTypeText carries an optional description and no embed.
	StepTypeText StepType = "TEXT"

	// StepTypeEmbed carries an embedded resource.
	StepTypeEmbed StepType = "EMBED"

	// StepTypeImage carries an embedded image.
	StepTypeImage StepType = "IMAGE"
)

// IsValid reports whether t is a recognised [StepType] value.
func (t StepType) IsValid() bool {
	switch t {
	case StepTypeText, StepTypeEmbed, StepTypeImage:
		return true
	}
	return false
}

// RequiresEmbed reports whether the step type is defined by its embed payload.
func (t StepType) RequiresEmbed() bool {
	return t == StepTypeEmbed || t == StepTypeImage
}

// StepStatus is the editorial state of a single step.
type StepStatus string

const (
	StepStatusActive StepStatus = "ACTIVE"
	StepStatusDraft  StepStatus = "DRAFT"
)

// IsValid reports whether s is a recognised [StepStatus] value.
func (s StepStatus) IsValid() bool {
	return s == StepStatusActive || s == StepStatusDraft
}

// EmbedType tells the client how to render an embed URL.
type EmbedType string

const (
	EmbedTypeOEmbed   EmbedType = "oembed"
	EmbedTypeIframe   EmbedType = "iframe"
	EmbedTypeLTI      EmbedType = "lti"
	EmbedTypeExternal EmbedType = "external"
)

// IsValid reports whether e is a recognised [EmbedType] value.
func (e EmbedType) IsValid() bool {
	switch e {
	case EmbedTypeOEmbed, EmbedTypeIframe, EmbedTypeLTI, EmbedTypeExternal:
		return true
	}
	return false
}

// # Domain Entities

// EmbedURL is the embedded resource of a step in one language.
type EmbedURL struct {
	URL       string    `json:"url"`
	EmbedType EmbedType `json:"embedType"`
	Language  string    `json:"language"`
}

// LanguageTag implements [language.Tagged].
func (e EmbedURL) LanguageTag() string { return e.Language }

// Message is the most recent system or moderator message attached to a path.
type Message struct {
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// LearningStep is one ordered element of a learning path.
type LearningStep struct {
	ID           int64                  `json:"id"`
	Revision     int                    `json:"revision"`
	SeqNo        int                    `json:"seqNo"`
	Titles       []language.Title       `json:"titles"`
	Descriptions []language.Description `json:"descriptions,omitempty"`
	EmbedURLs    []EmbedURL             `json:"embedUrls,omitempty"`
	ShowTitle    bool                   `json:"showTitle"`
	Type         StepType               `json:"type"`
	License      *License               `json:"license,omitempty"`
	Status       StepStatus             `json:"status"`
}

// LanguageKind implements [language.Entity].
func (s *LearningStep) LanguageKind() string { return language.KindLearningStep }

// LanguageFields implements [language.Entity].
func (s *LearningStep) LanguageFields() []language.FieldGroup {
	return []language.FieldGroup{
		language.Group(language.GroupTitle, s.Titles),
		language.Group(language.GroupDescription, s.Descriptions),
		language.Group(language.GroupEmbedURL, s.EmbedURLs),
	}
}

// LearningPath is the persisted aggregate: path metadata plus its ordered steps.
//
// Optional attributes are pointers so that an absent value and a zero value stay
// distinguishable through every serialisation.
type LearningPath struct {
	ID                 int64                   `json:"id"`
	Revision           int                     `json:"revision"`
	IsBasedOn          *int64                  `json:"isBasedOn,omitempty"`
	Titles             []language.Title        `json:"titles"`
	Descriptions       []language.Description  `json:"descriptions"`
	Introductions      []language.Introduction `json:"introductions,omitempty"`
	Tags               []language.Tags         `json:"tags"`
	LearningSteps      []LearningStep          `json:"learningsteps"`
	CoverPhotoURL      *string                 `json:"coverPhotoUrl,omitempty"`
	Duration           *int                    `json:"duration,omitempty"`
	Status             Status                  `json:"status"`
	VerificationStatus VerificationStatus      `json:"verificationStatus"`
	Copyright          Copyright               `json:"copyright"`
	SupportedLanguages []string                `json:"supportedLanguages"`
	OwnerID            *string                 `json:"ownerId,omitempty"`
	Message            *Message                `json:"message,omitempty"`
	LastUpdated        time.Time               `json:"lastUpdated"`
}

// LanguageKind implements [language.Entity].
func (p *LearningPath) LanguageKind() string { return language.KindLearningPath }

// LanguageFields implements [language.Entity].
//
// Introductions are not part of the union; see [LearningPath.IntroductionLanguages].
func (p *LearningPath) LanguageFields() []language.FieldGroup {
	return []language.FieldGroup{
		language.Group(language.GroupTitle, p.Titles),
		language.Group(language.GroupDescription, p.Descriptions),
		language.Group(language.GroupTags, p.Tags),
	}
}

// IntroductionLanguages is the field group that must stay within the supported languages.
func (p *LearningPath) IntroductionLanguages() language.FieldGroup {
	return language.Group(language.GroupIntroduction, p.Introductions)
}

// Step returns the step with the given id, or nil.
func (p *LearningPath) Step(id int64) *LearningStep {
	for i := range p.LearningSteps {
		if p.LearningSteps[i].ID == id {
			return &p.LearningSteps[i]
		}
	}
	return nil
}

// Clone returns a deep copy safe to mutate without touching p.
func (p *LearningPath) Clone() *LearningPath {
	clone := *p
	clone.IsBasedOn = clonePtr(p.IsBasedOn)
	clone.CoverPhotoURL = clonePtr(p.CoverPhotoURL)
	clone.Duration = clonePtr(p.Duration)
	clone.OwnerID = clonePtr(p.OwnerID)
	clone.Message = clonePtr(p.Message)
	clone.Titles = append([]language.Title(nil), p.Titles...)
	clone.Descriptions = append([]language.Description(nil), p.Descriptions...)
	clone.Introductions = append([]language.Introduction(nil), p.Introductions...)
	clone.SupportedLanguages = append([]string(nil), p.SupportedLanguages...)
	clone.Copyright.Contributors = append([]Author(nil), p.Copyright.Contributors...)
	clone.Copyright.License = p.Copyright.License.clone()

	clone.Tags = make([]language.Tags, len(p.Tags))
	for i, tags := range p.Tags {
		clone.Tags[i] = language.Tags{Tags: append([]string(nil), tags.Tags...), Language: tags.Language}
	}

	clone.LearningSteps = make([]LearningStep, len(p.LearningSteps))
	for i, step := range p.LearningSteps {
		clone.LearningSteps[i] = step.clone()
	}

	return &clone
}

func (s LearningStep) clone() LearningStep {
	s.Titles = append([]language.Title(nil), s.Titles...)
	s.Descriptions = append([]language.Description(nil), s.Descriptions...)
	s.EmbedURLs = append([]EmbedURL(nil), s.EmbedURLs...)
	if s.License != nil {
		license := s.License.clone()
		s.License = &license
	}
	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// # Field Constants

// Field names used in validation details.
const (
	FieldTitles             = "titles"
	FieldDescriptions       = "descriptions"
	FieldStatus             = "status"
	FieldVerificationStatus = "verificationStatus"
	FieldDuration           = "duration"
	FieldCoverPhotoURL      = "coverPhotoUrl"
	FieldLicense            = "copyright.license"
	FieldContributors       = "copyright.contributors"
	FieldStepType           = "type"
	FieldStepStatus         = "status"
	FieldEmbedURL           = "embedUrls"
	FieldSeqNo              = "seqNo"
	FieldRevision           = "revision"
	FieldMessage            = "message"
)
