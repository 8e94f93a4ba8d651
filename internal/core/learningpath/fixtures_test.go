// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/pointer"
)

var (
	owner     = sec.Principal{UserID: "user-1", Role: sec.RoleEditor}
	stranger  = sec.Principal{UserID: "user-2", Role: sec.RoleEditor}
	moderator = sec.Principal{UserID: "mod-1", Role: sec.RoleModerator}
)

// textStep is an ACTIVE TEXT step written in Bokmål.
func textStep(id int64, seqNo int) learningpath.LearningStep {
	return learningpath.LearningStep{
		ID:           id,
		Revision:     1,
		SeqNo:        seqNo,
		Titles:       []language.Title{{Title: "Steg", Language: "nb"}},
		Descriptions: []language.Description{{Description: "Tekst", Language: "nb"}},
		Type:         learningpath.StepTypeText,
		Status:       learningpath.StepStatusActive,
	}
}

// samplePath is a stored PRIVATE path (id 7) with two steps and no license.
func samplePath() *learningpath.LearningPath {
	return &learningpath.LearningPath{
		ID:                 7,
		Revision:           1,
		Titles:             []language.Title{{Title: "Algebra", Language: "nb"}},
		Descriptions:       []language.Description{{Description: "Grunnleggende algebra", Language: "nb"}},
		Tags:               []language.Tags{{Tags: []string{"matte"}, Language: "nb"}},
		LearningSteps:      []learningpath.LearningStep{textStep(11, 0), textStep(12, 1)},
		Status:             learningpath.StatusPrivate,
		VerificationStatus: learningpath.VerificationCreated,
		Copyright:          learningpath.Copyright{Contributors: []learningpath.Author{}},
		SupportedLanguages: []string{"nb"},
		OwnerID:            pointer.To(owner.UserID),
	}
}

// next returns a copy of prior one revision ahead.
func next(prior *learningpath.LearningPath) *learningpath.LearningPath {
	candidate := prior.Clone()
	candidate.Revision = prior.Revision + 1
	return candidate
}
