// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entity kinds known to the parity policy.
const (
	KindLearningPath = "learningpath"
	KindLearningStep = "learningstep"
)

// Parity maps an entity kind to the field groups that must share one tag set.
type Parity map[string][]string

// Policy is the language policy of the service.
//
// Example file:
//
//	fallback: nb
//	parity:
//	  learningpath: [title, description]
//	  learningstep: []
type Policy struct {
	Fallback string `yaml:"fallback"`
	Parity   Parity `yaml:"parity"`
}

// DefaultPolicy is used when no policy file is configured.
func DefaultPolicy(fallback string) Policy {
	return Policy{
		Fallback: fallback,
		Parity: Parity{
			KindLearningPath: {GroupTitle, GroupDescription},
			KindLearningStep: {},
		},
	}
}

/*
LoadPolicy reads the YAML policy at path. An empty path yields [DefaultPolicy].

Parameters:
  - path: string (Location of the YAML file, may be empty)
  - fallback: string (Default fallback language when the file sets none)

Returns:
  - Policy: The parsed policy with a canonical fallback tag
  - error: Read, parse or validation failures
*/
func LoadPolicy(path, fallback string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(fallback).normalise()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("language: read policy: %w", err)
	}

	return ParsePolicy(raw, fallback)
}

// ParsePolicy decodes a YAML policy document.
func ParsePolicy(raw []byte, fallback string) (Policy, error) {
	var policy Policy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, fmt.Errorf("language: decode policy: %w", err)
	}

	if policy.Fallback == "" {
		policy.Fallback = fallback
	}
	if policy.Parity == nil {
		policy.Parity = Parity{}
	}

	return policy.normalise()
}

// normalise canonicalises the fallback and rejects unknown group names.
func (p Policy) normalise() (Policy, error) {
	tag, err := Canonical(p.Fallback)
	if err != nil {
		return Policy{}, fmt.Errorf("language: policy fallback: %w", err)
	}
	p.Fallback = tag

	for kind, groups := range p.Parity {
		for _, group := range groups {
			switch group {
			case GroupTitle, GroupDescription, GroupIntroduction, GroupTags, GroupEmbedURL:
			default:
				return Policy{}, fmt.Errorf("language: policy for %s names unknown field group %q", kind, group)
			}
		}
	}

	return p, nil
}
