// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

// Wildcard is the "any language" marker some clients send. It is never a valid field tag.
const Wildcard = "*"

// Canonical returns the canonical BCP-47 form of tag ("EN-us" becomes "en-US").
//
// The wildcard and the undetermined tag "und" are rejected.
func Canonical(tag string) (string, error) {
	if tag == "" || tag == Wildcard {
		return "", fmt.Errorf("language: %q is not a concrete language tag", tag)
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("language: parse %q: %w", tag, err)
	}
	if parsed == language.Und {
		return "", fmt.Errorf("language: %q is undetermined", tag)
	}

	return parsed.String(), nil
}

// Same reports whether two tags denote the same language after canonicalisation.
// Tags that do not parse are compared verbatim.
func Same(a, b string) bool {
	if a == b {
		return true
	}
	ca, errA := Canonical(a)
	cb, errB := Canonical(b)
	return errA == nil && errB == nil && ca == cb
}

/*
ComputeSupportedLanguages derives the supported language set of an entity.

Description: Scans every tagged field group and returns the sorted union of canonical
tags. A group may hold at most one field per language. When the parity policy lists
groups for the entity kind, every tag present in one of those groups must be present
in all of them.

Parameters:
  - entity: Entity (Aggregate exposing its tagged field groups)
  - parity: Parity (Groups that must share a tag set, per entity kind)

Returns:
  - []string: Sorted canonical tags
  - error: VALIDATION_ERROR for malformed or duplicated tags, INCOMPLETE_TRANSLATION on parity failure
*/
func ComputeSupportedLanguages(entity Entity, parity Parity) ([]string, error) {
	groups := entity.LanguageFields()
	present := make(map[string]map[string]struct{}, len(groups))
	union := make(map[string]struct{})

	for _, group := range groups {
		seen, err := canonicalGroup(group)
		if err != nil {
			return nil, err
		}
		for tag := range seen {
			union[tag] = struct{}{}
		}
		present[group.Name] = seen
	}

	// Parity: walk tags in sorted order so the reported failure is deterministic
	required := parity[entity.LanguageKind()]
	if len(required) > 1 {
		candidates := make(map[string]struct{})
		for _, name := range required {
			for tag := range present[name] {
				candidates[tag] = struct{}{}
			}
		}

		for _, tag := range sortedKeys(candidates) {
			for _, name := range required {
				if _, ok := present[name][tag]; !ok {
					return nil, apperr.IncompleteTranslation(name, tag)
				}
			}
		}
	}

	return sortedKeys(union), nil
}

/*
ConfineToSupported checks that a field group outside the union uses only supported languages.

Description: Groups such as a path introduction do not widen the supported set. A tag
they carry that no union group carries is reported against anchor, the group a
translation has to be added to first.

Returns:
  - error: VALIDATION_ERROR for malformed or duplicated tags, INCOMPLETE_TRANSLATION for an unsupported tag
*/
func ConfineToSupported(group FieldGroup, supported []string, anchor string) error {
	seen, err := canonicalGroup(group)
	if err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(supported))
	for _, tag := range supported {
		allowed[tag] = struct{}{}
	}
	for _, tag := range sortedKeys(seen) {
		if _, ok := allowed[tag]; !ok {
			return apperr.IncompleteTranslation(anchor, tag)
		}
	}
	return nil
}

// canonicalGroup returns the canonical tags of group, rejecting malformed and repeated ones.
func canonicalGroup(group FieldGroup) (map[string]struct{}, error) {
	seen := make(map[string]struct{}, len(group.Languages))
	for _, raw := range group.Languages {
		tag, err := Canonical(raw)
		if err != nil {
			return nil, apperr.ValidationError("Invalid language tag",
				apperr.FieldError{Field: group.Name + ".language", Message: err.Error()})
		}
		if _, dup := seen[tag]; dup {
			return nil, apperr.ValidationError("Duplicate language in field group",
				apperr.FieldError{Field: group.Name + ".language", Message: fmt.Sprintf("'%s' appears more than once", tag)})
		}
		seen[tag] = struct{}{}
	}
	return seen, nil
}

// EqualSets reports whether two tag lists hold the same canonical languages, ignoring order.
func EqualSets(declared, computed []string) bool {
	normalised := make(map[string]struct{}, len(declared))
	for _, raw := range declared {
		tag, err := Canonical(raw)
		if err != nil {
			return false
		}
		normalised[tag] = struct{}{}
	}

	if len(normalised) != len(declared) || len(normalised) != len(computed) {
		return false
	}
	for _, tag := range computed {
		if _, ok := normalised[tag]; !ok {
			return false
		}
	}
	return true
}

// # Resolution

/*
Resolve returns the field written in requested, else the one in fallback.

Returns:
  - T: The matching field
  - error: LANGUAGE_NOT_FOUND when neither language is present
*/
func Resolve[T Tagged](fields []T, requested, fallback string) (T, error) {
	if field, ok := find(fields, requested); ok {
		return field, nil
	}
	if field, ok := find(fields, fallback); ok {
		return field, nil
	}

	var zero T
	return zero, apperr.LanguageNotFound(requested, fallback)
}

// ResolveOrFirst behaves like [Resolve] but settles for the first field when neither
// language is present. It fails only when fields is empty.
func ResolveOrFirst[T Tagged](fields []T, requested, fallback string) (T, error) {
	field, err := Resolve(fields, requested, fallback)
	if err != nil && len(fields) > 0 {
		return fields[0], nil
	}
	return field, err
}

// Optional resolves like [Resolve] and reports absence as ok=false instead of an error.
func Optional[T Tagged](fields []T, requested, fallback string) (T, bool) {
	field, err := Resolve(fields, requested, fallback)
	return field, err == nil
}

func find[T Tagged](fields []T, tag string) (T, bool) {
	if tag != "" && tag != Wildcard {
		for _, field := range fields {
			if Same(field.LanguageTag(), tag) {
				return field, true
			}
		}
	}
	var zero T
	return zero, false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
