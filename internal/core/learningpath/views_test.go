// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

func newProjector() *learningpath.Projector {
	return learningpath.NewProjector("https://api.example.org/", "nb")
}

func TestProjector_PathFallsBack(t *testing.T) {
	path := samplePath()
	path.LearningSteps[0].SeqNo, path.LearningSteps[1].SeqNo = 1, 0

	view, err := newProjector().Path(path, "en", owner, false)
	require.NoError(t, err)

	assert.Equal(t, "nb", view.Title.Language)
	assert.Equal(t, "Grunnleggende algebra", view.Description.Description)
	assert.Equal(t, "https://api.example.org/api/v1/learningpaths/7", view.MetaURL)
	assert.Equal(t, "https://api.example.org/api/v1/learningpaths/7/learningsteps", view.LearningStepURL)
	assert.True(t, view.CanEdit)
	require.Len(t, view.LearningSteps, 2)
	assert.Equal(t, int64(12), view.LearningSteps[0].ID)
	assert.Equal(t, "https://api.example.org/api/v1/learningpaths/7/learningsteps/12", view.LearningSteps[0].MetaURL)
	assert.True(t, view.LearningSteps[0].CanEdit)

	other, err := newProjector().Path(path, "nb", stranger, false)
	require.NoError(t, err)
	assert.False(t, other.CanEdit)
	assert.False(t, other.LearningSteps[0].CanEdit)
}

func TestProjector_PathLanguageNotFound(t *testing.T) {
	path := samplePath()
	path.Titles[0].Language = "nn"
	path.Descriptions[0].Language = "nn"

	_, err := newProjector().Path(path, "en", owner, false)
	requireCode(t, err, apperr.CodeLanguageNotFound)

	view, err := newProjector().Path(path, "en", owner, true)
	require.NoError(t, err)
	assert.Equal(t, "nn", view.Title.Language)
}

func TestProjector_Summary(t *testing.T) {
	path := samplePath()
	path.Titles[0].Language = "se"
	path.Message = &learningpath.Message{Message: "Fix it"}

	summary := newProjector().Summary(path, "en")
	assert.Equal(t, "se", summary.Title.Language)
	require.NotNil(t, summary.Revision)
	assert.Equal(t, 1, *summary.Revision)
	require.NotNil(t, summary.Message)
	assert.Equal(t, "Fix it", *summary.Message)
	assert.Equal(t, []string{"matte"}, summary.Tags.Tags)
}

func TestProjector_Search(t *testing.T) {
	page := 2
	result := newProjector().Search([]*learningpath.LearningPath{samplePath()}, 11, &page, 10, "")

	assert.Equal(t, 11, result.TotalCount)
	assert.Equal(t, "nb", result.Language)
	assert.Equal(t, 10, result.PageSize)
	require.Len(t, result.Results, 1)
	assert.Equal(t, int64(7), result.Results[0].ID)
}

func TestProjector_Step(t *testing.T) {
	path := samplePath()
	path.LearningSteps[1].Type = learningpath.StepTypeEmbed
	path.LearningSteps[1].Descriptions = nil
	path.LearningSteps[1].EmbedURLs = []learningpath.EmbedURL{{URL: "https://example.org/v", EmbedType: learningpath.EmbedTypeIframe, Language: "nb"}}

	view := newProjector().Step(path, &path.LearningSteps[1], "nb", stranger)
	assert.Nil(t, view.Description)
	require.NotNil(t, view.EmbedURL)
	assert.Equal(t, learningpath.EmbedTypeIframe, view.EmbedURL.EmbedType)
	assert.Equal(t, []string{"nb"}, view.SupportedLanguages)
	assert.False(t, view.CanEdit)

	text := newProjector().Step(path, &path.LearningSteps[0], "nb", owner)
	require.NotNil(t, text.Description)
	assert.Nil(t, text.EmbedURL)
}

func TestProjector_Steps(t *testing.T) {
	container := newProjector().Steps(samplePath(), "")

	assert.Equal(t, "nb", container.Language)
	require.Len(t, container.LearningSteps, 2)
	assert.Equal(t, 0, container.LearningSteps[0].SeqNo)
	assert.Equal(t, []string{"nb"}, container.SupportedLanguages)
}

func TestProjector_Tags(t *testing.T) {
	all := []language.Tags{
		{Tags: []string{"matte", "brøk"}, Language: "nb"},
		{Tags: []string{"maths"}, Language: "en"},
	}

	summary, err := newProjector().Tags(all, "en", false)
	require.NoError(t, err)
	assert.Equal(t, "en", summary.Language)
	assert.Equal(t, []string{"maths"}, summary.Tags)
	assert.ElementsMatch(t, []string{"nb", "en"}, summary.SupportedLanguages)

	summary, err = newProjector().Tags(all, "se", false)
	require.NoError(t, err)
	assert.Equal(t, "nb", summary.Language)

	_, err = newProjector().Tags(all[1:], "se", false)
	requireCode(t, err, apperr.CodeLanguageNotFound)

	summary, err = newProjector().Tags(all[1:], "se", true)
	require.NoError(t, err)
	assert.Equal(t, "en", summary.Language)

	empty, err := newProjector().Tags(nil, "nb", false)
	require.NoError(t, err)
	assert.Empty(t, empty.Tags)
}
