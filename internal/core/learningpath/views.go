// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/slice"
)

// # Read Projections

// CoverPhoto is the cover image of a path.
type CoverPhoto struct {
	URL     string `json:"url"`
	MetaURL string `json:"metaUrl"`
}

// LearningPathV2 is a path rendered in one language for one principal.
type LearningPathV2 struct {
	ID                 int64                `json:"id"`
	Revision           int                  `json:"revision"`
	IsBasedOn          *int64               `json:"isBasedOn,omitempty"`
	Title              language.Title       `json:"title"`
	Description        language.Description `json:"description"`
	MetaURL            string               `json:"metaUrl"`
	LearningSteps      []LearningStepV2     `json:"learningsteps"`
	LearningStepURL    string               `json:"learningstepUrl"`
	CoverPhoto         *CoverPhoto          `json:"coverPhoto,omitempty"`
	Duration           *int                 `json:"duration,omitempty"`
	Status             Status               `json:"status"`
	VerificationStatus VerificationStatus   `json:"verificationStatus"`
	LastUpdated        time.Time            `json:"lastUpdated"`
	Tags               language.Tags        `json:"tags"`
	Copyright          Copyright            `json:"copyright"`
	CanEdit            bool                 `json:"canEdit"`
	SupportedLanguages []string             `json:"supportedLanguages"`
	OwnerID            *string              `json:"ownerId,omitempty"`
	Message            *Message             `json:"message,omitempty"`
}

// LearningPathSummaryV2 is the compact form used in listings.
type LearningPathSummaryV2 struct {
	ID                 int64                 `json:"id"`
	Revision           *int                  `json:"revision,omitempty"`
	Title              language.Title        `json:"title"`
	Description        language.Description  `json:"description"`
	Introduction       language.Introduction `json:"introduction"`
	MetaURL            string                `json:"metaUrl"`
	CoverPhotoURL      *string               `json:"coverPhotoUrl,omitempty"`
	Duration           *int                  `json:"duration,omitempty"`
	Status             Status                `json:"status"`
	LastUpdated        time.Time             `json:"lastUpdated"`
	Tags               language.Tags         `json:"tags"`
	Copyright          Copyright             `json:"copyright"`
	SupportedLanguages []string              `json:"supportedLanguages"`
	IsBasedOn          *int64                `json:"isBasedOn,omitempty"`
	Message            *string               `json:"message,omitempty"`
}

// EmbedURLView is a step embed without its language (IEmbedUrlV2).
type EmbedURLView struct {
	URL       string    `json:"url"`
	EmbedType EmbedType `json:"embedType"`
}

// LearningStepV2 is a step rendered in one language for one principal.
type LearningStepV2 struct {
	ID                 int64                 `json:"id"`
	Revision           int                   `json:"revision"`
	SeqNo              int                   `json:"seqNo"`
	Title              language.Title        `json:"title"`
	Description        *language.Description `json:"description,omitempty"`
	EmbedURL           *EmbedURLView         `json:"embedUrl,omitempty"`
	ShowTitle          bool                  `json:"showTitle"`
	Type               StepType              `json:"type"`
	License            *License              `json:"license,omitempty"`
	MetaURL            string                `json:"metaUrl"`
	CanEdit            bool                  `json:"canEdit"`
	Status             StepStatus            `json:"status"`
	SupportedLanguages []string              `json:"supportedLanguages"`
}

// LearningStepSummaryV2 is the compact form of a step.
type LearningStepSummaryV2 struct {
	ID      int64          `json:"id"`
	SeqNo   int            `json:"seqNo"`
	Title   language.Title `json:"title"`
	Type    StepType       `json:"type"`
	MetaURL string         `json:"metaUrl"`
}

// LearningStepContainerSummary lists the steps of a path in one language.
type LearningStepContainerSummary struct {
	Language           string                  `json:"language"`
	LearningSteps      []LearningStepSummaryV2 `json:"learningsteps"`
	SupportedLanguages []string                `json:"supportedLanguages"`
}

// LearningPathTagsSummary lists the tags in use for one language.
type LearningPathTagsSummary struct {
	Language           string   `json:"language"`
	SupportedLanguages []string `json:"supportedLanguages"`
	Tags               []string `json:"tags"`
}

// SearchResultV2 is one page of search results.
type SearchResultV2 struct {
	TotalCount int                     `json:"totalCount"`
	Page       *int                    `json:"page,omitempty"`
	PageSize   int                     `json:"pageSize"`
	Language   string                  `json:"language"`
	Results    []LearningPathSummaryV2 `json:"results"`
}

// # Projector

// Projector renders aggregates into read projections.
//
// It is stateless apart from its configuration and safe for concurrent use.
type Projector struct {
	baseURL  string
	fallback string
}

// NewProjector constructs a [Projector] building absolute URLs below baseURL.
func NewProjector(baseURL, fallback string) *Projector {
	return &Projector{
		baseURL:  strings.TrimRight(baseURL, "/"),
		fallback: fallback,
	}
}

func (projector *Projector) pathURL(id int64) string {
	return fmt.Sprintf("%s/api/v1/learningpaths/%d", projector.baseURL, id)
}

func (projector *Projector) stepsURL(pathID int64) string {
	return projector.pathURL(pathID) + "/learningsteps"
}

func (projector *Projector) stepURL(pathID, stepID int64) string {
	return fmt.Sprintf("%s/%d", projector.stepsURL(pathID), stepID)
}

/*
Path renders a full path.

Parameters:
  - path: *LearningPath
  - lang: string (Requested language)
  - principal: sec.Principal (Decides canEdit)
  - anyLanguage: bool (Settle for any translation when lang and the fallback are missing)

Returns:
  - *LearningPathV2: The projection
  - error: LANGUAGE_NOT_FOUND when the title has neither language and anyLanguage is false
*/
func (projector *Projector) Path(path *LearningPath, lang string, principal sec.Principal, anyLanguage bool) (*LearningPathV2, error) {
	title, err := projector.title(path.Titles, lang, anyLanguage)
	if err != nil {
		return nil, err
	}

	display := title.Language
	description, _ := language.Optional(path.Descriptions, display, projector.fallback)
	tags, ok := language.Optional(path.Tags, display, projector.fallback)
	if !ok {
		tags = language.Tags{Tags: []string{}, Language: display}
	}

	canEdit := CanEdit(path, principal)
	steps := make([]LearningStepV2, 0, len(path.LearningSteps))
	for _, step := range orderedSteps(path.LearningSteps) {
		steps = append(steps, projector.step(path.ID, step, display, canEdit))
	}

	var cover *CoverPhoto
	if path.CoverPhotoURL != nil {
		cover = &CoverPhoto{URL: *path.CoverPhotoURL, MetaURL: *path.CoverPhotoURL}
	}

	return &LearningPathV2{
		ID:                 path.ID,
		Revision:           path.Revision,
		IsBasedOn:          path.IsBasedOn,
		Title:              title,
		Description:        description,
		MetaURL:            projector.pathURL(path.ID),
		LearningSteps:      steps,
		LearningStepURL:    projector.stepsURL(path.ID),
		CoverPhoto:         cover,
		Duration:           path.Duration,
		Status:             path.Status,
		VerificationStatus: path.VerificationStatus,
		LastUpdated:        path.LastUpdated,
		Tags:               tags,
		Copyright:          path.Copyright,
		CanEdit:            canEdit,
		SupportedLanguages: path.SupportedLanguages,
		OwnerID:            path.OwnerID,
		Message:            path.Message,
	}, nil
}

// Summary renders the listing form of a path, settling for any translation.
func (projector *Projector) Summary(path *LearningPath, lang string) LearningPathSummaryV2 {
	title, _ := projector.title(path.Titles, lang, true)
	display := title.Language

	description, _ := language.Optional(path.Descriptions, display, projector.fallback)
	introduction, _ := language.Optional(path.Introductions, display, projector.fallback)
	tags, ok := language.Optional(path.Tags, display, projector.fallback)
	if !ok {
		tags = language.Tags{Tags: []string{}, Language: display}
	}

	revision := path.Revision
	summary := LearningPathSummaryV2{
		ID:                 path.ID,
		Revision:           &revision,
		Title:              title,
		Description:        description,
		Introduction:       introduction,
		MetaURL:            projector.pathURL(path.ID),
		CoverPhotoURL:      path.CoverPhotoURL,
		Duration:           path.Duration,
		Status:             path.Status,
		LastUpdated:        path.LastUpdated,
		Tags:               tags,
		Copyright:          path.Copyright,
		SupportedLanguages: path.SupportedLanguages,
		IsBasedOn:          path.IsBasedOn,
	}
	if path.Message != nil {
		summary.Message = &path.Message.Message
	}
	return summary
}

// Summaries renders a listing.
func (projector *Projector) Summaries(paths []*LearningPath, lang string) []LearningPathSummaryV2 {
	return slice.Map(paths, func(path *LearningPath) LearningPathSummaryV2 {
		return projector.Summary(path, lang)
	})
}

// Search renders a page of search results.
func (projector *Projector) Search(paths []*LearningPath, total int, page *int, pageSize int, lang string) SearchResultV2 {
	if lang == "" {
		lang = projector.fallback
	}
	return SearchResultV2{
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		Language:   lang,
		Results:    projector.Summaries(paths, lang),
	}
}

// Step renders one step of path.
func (projector *Projector) Step(path *LearningPath, step *LearningStep, lang string, principal sec.Principal) LearningStepV2 {
	return projector.step(path.ID, step, lang, CanEdit(path, principal))
}

func (projector *Projector) step(pathID int64, step *LearningStep, lang string, canEdit bool) LearningStepV2 {
	title, _ := projector.title(step.Titles, lang, true)

	view := LearningStepV2{
		ID:                 step.ID,
		Revision:           step.Revision,
		SeqNo:              step.SeqNo,
		Title:              title,
		ShowTitle:          step.ShowTitle,
		Type:               step.Type,
		License:            step.License,
		MetaURL:            projector.stepURL(pathID, step.ID),
		CanEdit:            canEdit,
		Status:             step.Status,
		SupportedLanguages: stepLanguages(step),
	}

	if description, ok := language.Optional(step.Descriptions, title.Language, projector.fallback); ok {
		view.Description = &description
	}
	if embed, ok := language.Optional(step.EmbedURLs, title.Language, projector.fallback); ok {
		view.EmbedURL = &EmbedURLView{URL: embed.URL, EmbedType: embed.EmbedType}
	}
	return view
}

// Steps renders the step listing of a path.
func (projector *Projector) Steps(path *LearningPath, lang string) LearningStepContainerSummary {
	if lang == "" {
		lang = projector.fallback
	}

	summaries := make([]LearningStepSummaryV2, 0, len(path.LearningSteps))
	for _, step := range orderedSteps(path.LearningSteps) {
		title, _ := projector.title(step.Titles, lang, true)
		summaries = append(summaries, LearningStepSummaryV2{
			ID:      step.ID,
			SeqNo:   step.SeqNo,
			Title:   title,
			Type:    step.Type,
			MetaURL: projector.stepURL(path.ID, step.ID),
		})
	}

	return LearningStepContainerSummary{
		Language:           lang,
		LearningSteps:      summaries,
		SupportedLanguages: path.SupportedLanguages,
	}
}

// Tags renders the tag catalogue for one language.
func (projector *Projector) Tags(all []language.Tags, lang string, anyLanguage bool) (LearningPathTagsSummary, error) {
	supported := language.Languages(all)

	var (
		tags language.Tags
		err  error
	)
	if anyLanguage {
		tags, err = language.ResolveOrFirst(all, lang, projector.fallback)
	} else {
		tags, err = language.Resolve(all, lang, projector.fallback)
	}
	if err != nil && len(all) > 0 {
		return LearningPathTagsSummary{}, err
	}
	if len(all) == 0 {
		tags = language.Tags{Tags: []string{}, Language: lang}
	}

	return LearningPathTagsSummary{
		Language:           tags.Language,
		SupportedLanguages: supported,
		Tags:               tags.Tags,
	}, nil
}

func (projector *Projector) title(titles []language.Title, lang string, anyLanguage bool) (language.Title, error) {
	if anyLanguage {
		title, err := language.ResolveOrFirst(titles, lang, projector.fallback)
		if err != nil {
			return language.Title{Title: "", Language: lang}, nil
		}
		return title, nil
	}
	return language.Resolve(titles, lang, projector.fallback)
}

// stepLanguages lists the languages a step is written in.
func stepLanguages(step *LearningStep) []string {
	supported, err := language.ComputeSupportedLanguages(step, nil)
	if err != nil {
		return []string{}
	}
	return supported
}
