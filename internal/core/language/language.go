// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package language owns everything that is keyed by a language tag.

Responsibilities:

  - Catalogue: the reference list of languages content may be written in (core.language).
  - Fields: the language-tagged value types shared by learning paths and steps.
  - Set computation: deriving supportedLanguages from the tagged fields of an entity.
  - Resolution: picking the field for a requested language with a fallback.

The computation and resolution functions are pure and safe for concurrent use.
*/
package language

import "time"

// Language represents a spoken/written language registered in the catalogue.
type Language struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"nativeName"`
	CreatedAt  time.Time `json:"-"`
}

// # Language-Tagged Fields

// Tagged is implemented by every value that carries a language tag.
type Tagged interface {
	LanguageTag() string
}

// Title is a title written in one language.
type Title struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

// LanguageTag implements [Tagged].
func (t Title) LanguageTag() string { return t.Language }

// Description is a description written in one language.
type Description struct {
	Description string `json:"description"`
	Language    string `json:"language"`
}

// LanguageTag implements [Tagged].
func (d Description) LanguageTag() string { return d.Language }

// Introduction is the introduction text shown on the path front page.
type Introduction struct {
	Introduction string `json:"introduction"`
	Language     string `json:"language"`
}

// LanguageTag implements [Tagged].
func (i Introduction) LanguageTag() string { return i.Language }

// Tags is the set of free-text tags in one language.
type Tags struct {
	Tags     []string `json:"tags"`
	Language string   `json:"language"`
}

// LanguageTag implements [Tagged].
func (t Tags) LanguageTag() string { return t.Language }

// Field group names used in error reports and the parity policy.
const (
	GroupTitle        = "title"
	GroupDescription  = "description"
	GroupIntroduction = "introduction"
	GroupTags         = "tags"
	GroupEmbedURL     = "embedUrl"
)

// FieldGroup is the set of languages present in one named group of tagged fields.
type FieldGroup struct {
	Name      string
	Languages []string
}

// Entity is implemented by aggregates whose supported languages are derived from their fields.
type Entity interface {
	// LanguageKind names the entity type in the parity policy (e.g. "learningpath").
	LanguageKind() string
	// LanguageFields returns every tagged field group of the entity.
	LanguageFields() []FieldGroup
}

// Languages returns the raw language tags of fields in input order.
func Languages[T Tagged](fields []T) []string {
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		tags = append(tags, field.LanguageTag())
	}
	return tags
}

// Group is shorthand for building a [FieldGroup] from a slice of tagged fields.
func Group[T Tagged](name string, fields []T) FieldGroup {
	return FieldGroup{Name: name, Languages: Languages(fields)}
}
