// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"github.com/taibuivan/learnpath/internal/platform/validate"
)

// Length limits for free-text fields.
const (
	maxTitleLength        = 256
	maxDescriptionLength  = 10000
	maxIntroductionLength = 20000
	maxTagLength          = 64
	maxMessageLength      = 2000
	maxDurationMinutes    = 60 * 24 * 365
)

// # Path Commands

// NewLearningPathV2 creates a path in one language.
type NewLearningPathV2 struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Introduction  *string    `json:"introduction,omitempty"`
	CoverPhotoURL *string    `json:"coverPhotoMetaUrl,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Language      string     `json:"language"`
	Copyright     *Copyright `json:"copyright,omitempty"`
	Status        *Status    `json:"status,omitempty"`
}

// Validate checks field formats. Cross-field rules belong to [Checker].
func (c *NewLearningPathV2) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitles, c.Title).MaxLen(FieldTitles, c.Title, maxTitleLength).
		Required(FieldDescriptions, c.Description).MaxLen(FieldDescriptions, c.Description, maxDescriptionLength).
		LanguageTag("language", c.Language)

	if c.Introduction != nil {
		validator.MaxLen("introductions", *c.Introduction, maxIntroductionLength)
	}
	validateCommon(validator, c.CoverPhotoURL, c.Duration, c.Tags, c.Copyright)

	if c.Status != nil {
		validator.OneOf(FieldStatus, string(*c.Status), string(StatusPrivate), string(StatusPlanned))
	}

	return validator.Err()
}

// UpdateLearningPathV2 patches a path in one language. Nil fields are left unchanged.
//
// Revision is the revision the client read; the update is rejected if the path moved on.
type UpdateLearningPathV2 struct {
	Revision      int        `json:"revision"`
	Language      string     `json:"language"`
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Introduction  *string    `json:"introduction,omitempty"`
	CoverPhotoURL *string    `json:"coverPhotoMetaUrl,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	Tags          *[]string  `json:"tags,omitempty"`
	Copyright     *Copyright `json:"copyright,omitempty"`
}

// Validate checks field formats.
func (c *UpdateLearningPathV2) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldRevision, c.Revision < 1, "Must be the revision that was read").
		LanguageTag("language", c.Language)

	if c.Title != nil {
		validator.Required(FieldTitles, *c.Title).MaxLen(FieldTitles, *c.Title, maxTitleLength)
	}
	if c.Description != nil {
		validator.Required(FieldDescriptions, *c.Description).MaxLen(FieldDescriptions, *c.Description, maxDescriptionLength)
	}
	if c.Introduction != nil {
		validator.MaxLen("introductions", *c.Introduction, maxIntroductionLength)
	}

	var tags []string
	if c.Tags != nil {
		tags = *c.Tags
	}
	coverPhoto := c.CoverPhotoURL
	if coverPhoto != nil && *coverPhoto == "" {
		coverPhoto = nil
	}
	validateCommon(validator, coverPhoto, c.Duration, tags, c.Copyright)

	return validator.Err()
}

// UpdateLearningPathStatus is the body of a status change (ILearningPathStatus).
// Message is honoured for moderators only.
type UpdateLearningPathStatus struct {
	Status  Status  `json:"status"`
	Message *string `json:"message,omitempty"`
}

// Validate checks field formats.
func (c *UpdateLearningPathStatus) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldStatus, !c.Status.IsValid(), "Unknown status")
	if c.Message != nil {
		validator.MaxLen(FieldMessage, *c.Message, maxMessageLength)
	}
	return validator.Err()
}

// UpdateLearningPathVerification is a moderator's review decision.
type UpdateLearningPathVerification struct {
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// Validate checks field formats.
func (c *UpdateLearningPathVerification) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldVerificationStatus, !c.VerificationStatus.IsValid(), "Unknown verification status")
	return validator.Err()
}

// CopyLearningPathV2 overrides attributes of a copy. Every field is optional.
type CopyLearningPathV2 struct {
	Title    *string `json:"title,omitempty"`
	Language string  `json:"language,omitempty"`
}

// Validate checks field formats.
func (c *CopyLearningPathV2) Validate() error {
	validator := &validate.Validator{}
	if c.Title != nil {
		validator.Required(FieldTitles, *c.Title).MaxLen(FieldTitles, *c.Title, maxTitleLength).
			LanguageTag("language", c.Language)
	}
	return validator.Err()
}

func validateCommon(validator *validate.Validator, coverPhoto *string, duration *int, tags []string, copyright *Copyright) {
	if coverPhoto != nil {
		validator.URL(FieldCoverPhotoURL, *coverPhoto)
	}
	if duration != nil {
		validator.Range(FieldDuration, *duration, 1, maxDurationMinutes)
	}
	for _, tag := range tags {
		validator.MaxLen("tags", tag, maxTagLength)
	}
	if copyright != nil {
		validateCopyright(validator, copyright)
	}
}

func validateCopyright(validator *validate.Validator, copyright *Copyright) {
	if copyright.License.IsSet() {
		validator.Custom(FieldLicense, !copyright.License.License.IsValid(), "Unknown license")
	}
	if copyright.License.URL != nil {
		validator.URL(FieldLicense+".url", *copyright.License.URL)
	}
	for _, author := range copyright.Contributors {
		validator.Custom(FieldContributors, !author.Type.IsValid(), "Unknown contributor type '"+string(author.Type)+"'").
			Required(FieldContributors, author.Name)
	}
}

// # Step Commands

// EmbedURLV2 is the embed payload of a step in one language (IEmbedUrlV2).
type EmbedURLV2 struct {
	URL       string    `json:"url"`
	EmbedType EmbedType `json:"embedType"`
}

// NewLearningStepV2 appends a step in one language.
type NewLearningStepV2 struct {
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	EmbedURL    *EmbedURLV2 `json:"embedUrl,omitempty"`
	ShowTitle   bool        `json:"showTitle"`
	Type        StepType    `json:"type"`
	License     *License    `json:"license,omitempty"`
	Language    string      `json:"language"`
}

// Validate checks field formats. Payload/type agreement is checked by [Checker].
func (c *NewLearningStepV2) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitles, c.Title).MaxLen(FieldTitles, c.Title, maxTitleLength).
		LanguageTag("language", c.Language).
		Custom(FieldStepType, !c.Type.IsValid(), "Unknown step type")

	validateStepPayload(validator, c.Description, c.EmbedURL, c.License)
	return validator.Err()
}

// UpdateLearningStepV2 patches a step in one language. Nil fields are left unchanged;
// an empty description or embed URL removes it for that language.
type UpdateLearningStepV2 struct {
	Revision    int         `json:"revision"`
	Language    string      `json:"language"`
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	EmbedURL    *EmbedURLV2 `json:"embedUrl,omitempty"`
	ShowTitle   *bool       `json:"showTitle,omitempty"`
	Type        *StepType   `json:"type,omitempty"`
	License     *License    `json:"license,omitempty"`
}

// Validate checks field formats.
func (c *UpdateLearningStepV2) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldRevision, c.Revision < 1, "Must be the revision that was read").
		LanguageTag("language", c.Language)

	if c.Title != nil {
		validator.Required(FieldTitles, *c.Title).MaxLen(FieldTitles, *c.Title, maxTitleLength)
	}
	if c.Type != nil {
		validator.Custom(FieldStepType, !c.Type.IsValid(), "Unknown step type")
	}

	embed := c.EmbedURL
	if embed != nil && embed.URL == "" {
		embed = nil
	}
	validateStepPayload(validator, c.Description, embed, c.License)
	return validator.Err()
}

// UpdateLearningStepStatus is the body of a step status change (ILearningStepStatus).
type UpdateLearningStepStatus struct {
	Status StepStatus `json:"status"`
}

// Validate checks field formats.
func (c *UpdateLearningStepStatus) Validate() error {
	validator := &validate.Validator{}
	validator.Custom(FieldStepStatus, !c.Status.IsValid(), "Unknown step status")
	return validator.Err()
}

// UpdateLearningStepSeqNo moves a step (ILearningStepSeqNo).
type UpdateLearningStepSeqNo struct {
	SeqNo int `json:"seqNo"`
}

func validateStepPayload(validator *validate.Validator, description *string, embed *EmbedURLV2, license *License) {
	if description != nil {
		validator.MaxLen(FieldDescriptions, *description, maxDescriptionLength)
	}
	if embed != nil {
		validator.URL(FieldEmbedURL, embed.URL).
			Custom(FieldEmbedURL+".embedType", !embed.EmbedType.IsValid(), "Unknown embed type")
	}
	if license != nil {
		validator.Custom("license", !license.License.IsValid(), "Unknown license")
	}
}
