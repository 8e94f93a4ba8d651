// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/pointer"
)

func TestCanEdit(t *testing.T) {
	path := samplePath()

	assert.True(t, learningpath.CanEdit(path, owner))
	assert.True(t, learningpath.CanEdit(path, moderator))
	assert.False(t, learningpath.CanEdit(path, stranger))
	assert.False(t, learningpath.CanEdit(path, sec.Principal{}))
}

func TestService_GetPathVisibility(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(samplePath()))

	_, err := service.GetPath(ctx, stranger, 7)
	requireCode(t, err, apperr.CodeForbidden)

	path, err := service.GetPath(ctx, owner, 7)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", path.Titles[0].Title)

	_, err = service.GetPath(ctx, owner, 99)
	requireCode(t, err, apperr.CodeNotFound)
}

func TestService_CreatePath(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := newTestService(repo)

	path, err := service.CreatePath(ctx, owner, learningpath.NewLearningPathV2{
		Title:       "Brøk",
		Description: "Regning med brøk",
		Tags:        []string{"matte", " Matte ", "brøk"},
		Language:    "NB",
	})
	require.NoError(t, err)

	assert.NotZero(t, path.ID)
	assert.Equal(t, 1, path.Revision)
	assert.Equal(t, learningpath.StatusPrivate, path.Status)
	assert.Equal(t, learningpath.VerificationCreated, path.VerificationStatus)
	assert.Equal(t, []string{"nb"}, path.SupportedLanguages)
	assert.Equal(t, []string{"matte", "brøk"}, path.Tags[0].Tags)
	require.NotNil(t, path.OwnerID)
	assert.Equal(t, owner.UserID, *path.OwnerID)

	stored, err := repo.FindByID(ctx, path.ID)
	require.NoError(t, err)
	assert.Equal(t, path.Titles, stored.Titles)
}

func TestService_CreatePathRejections(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository())
	valid := learningpath.NewLearningPathV2{Title: "Brøk", Description: "Regning", Language: "nb"}

	_, err := service.CreatePath(ctx, sec.Principal{}, valid)
	requireCode(t, err, apperr.CodeUnauthorized)

	unknown := valid
	unknown.Language = "de"
	_, err = service.CreatePath(ctx, owner, unknown)
	requireCode(t, err, apperr.CodeValidation)

	published := valid
	published.Status = pointer.To(learningpath.StatusPublished)
	_, err = service.CreatePath(ctx, owner, published)
	requireCode(t, err, apperr.CodeValidation)

	untitled := valid
	untitled.Title = ""
	_, err = service.CreatePath(ctx, owner, untitled)
	requireCode(t, err, apperr.CodeValidation)
}

func TestService_UpdatePathAddsTranslation(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(samplePath()))

	// A title alone would break title/description parity
	_, err := service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision: 1,
		Language: "en",
		Title:    pointer.To("Algebra"),
	})
	requireCode(t, err, apperr.CodeIncompleteTranslation)

	path, err := service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision:    1,
		Language:    "en",
		Title:       pointer.To("Algebra"),
		Description: pointer.To("Basic algebra"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, path.Revision)
	assert.Equal(t, []string{"en", "nb"}, path.SupportedLanguages)
}

func TestService_IntroductionDoesNotWidenLanguages(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository(samplePath())
	service := newTestService(repo)

	_, err := service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision:     1,
		Language:     "en",
		Introduction: pointer.To("Intro only"),
	})
	appErr := requireCode(t, err, apperr.CodeIncompleteTranslation)
	assert.Equal(t, language.GroupTitle, appErr.Field)

	stored, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Revision)
	assert.Empty(t, stored.Introductions)

	path, err := service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision:     1,
		Language:     "nb",
		Introduction: pointer.To("Innledning"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nb"}, path.SupportedLanguages)
	require.Len(t, path.Introductions, 1)
	assert.Equal(t, "nb", path.Introductions[0].Language)
}

func TestService_WriteRestriction(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository(samplePath())
	service := newGatedService(repo, writeGate(true))

	_, err := service.CreatePath(ctx, owner, learningpath.NewLearningPathV2{Title: "Brøk", Description: "Regning med brøk", Language: "nb"})
	requireCode(t, err, apperr.CodeForbidden)

	_, err = service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{Revision: 1, Language: "nb", Title: pointer.To("Algebra 2")})
	requireCode(t, err, apperr.CodeForbidden)

	_, _, err = service.AddStep(ctx, owner, 7, learningpath.NewLearningStepV2{Title: "Steg", Description: pointer.To("Tekst"), Type: learningpath.StepTypeText, Language: "nb"})
	requireCode(t, err, apperr.CodeForbidden)

	_, err = service.CopyPath(ctx, owner, 7, learningpath.CopyLearningPathV2{})
	requireCode(t, err, apperr.CodeForbidden)

	requireCode(t, service.DeletePath(ctx, owner, 7), apperr.CodeForbidden)

	_, err = service.UpdatePath(ctx, sec.Principal{}, 7, learningpath.UpdateLearningPathV2{Revision: 1, Language: "nb"})
	requireCode(t, err, apperr.CodeUnauthorized)

	// Reads stay open and moderators keep write access
	_, err = service.GetPath(ctx, owner, 7)
	require.NoError(t, err)

	path, err := service.UpdatePath(ctx, moderator, 7, learningpath.UpdateLearningPathV2{Revision: 1, Language: "nb", Title: pointer.To("Algebra 2")})
	require.NoError(t, err)
	assert.Equal(t, 2, path.Revision)
}

func TestService_UpdatePathStaleRevision(t *testing.T) {
	ctx := context.Background()
	stored := samplePath()
	stored.Revision = 2
	service := newTestService(newMemoryRepository(stored))

	_, err := service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision: 1,
		Language: "nb",
		Title:    pointer.To("Algebra 2"),
	})
	requireCode(t, err, apperr.CodeStaleRevision)

	_, err = service.UpdatePath(ctx, stranger, 7, learningpath.UpdateLearningPathV2{
		Revision: 2,
		Language: "nb",
		Title:    pointer.To("Algebra 2"),
	})
	requireCode(t, err, apperr.CodeForbidden)
}

func TestService_UpdatePathStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository(samplePath())
	service := newTestService(repo)

	_, err := service.UpdatePathStatus(ctx, owner, 7, learningpath.UpdateLearningPathStatus{Status: learningpath.StatusPublished})
	appErr := requireCode(t, err, apperr.CodeNotReadyToPublish)
	assert.Equal(t, learningpath.MissingLicense, appErr.Field)

	_, err = service.UpdatePath(ctx, owner, 7, learningpath.UpdateLearningPathV2{
		Revision:  1,
		Language:  "nb",
		Copyright: &learningpath.Copyright{License: learningpath.License{License: learningpath.LicenseCCBYSA}},
	})
	require.NoError(t, err)

	path, err := service.UpdatePathStatus(ctx, owner, 7, learningpath.UpdateLearningPathStatus{Status: learningpath.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, learningpath.StatusPublished, path.Status)
	assert.Equal(t, 3, path.Revision)

	_, err = service.UpdatePathStatus(ctx, owner, 7, learningpath.UpdateLearningPathStatus{
		Status:  learningpath.StatusUnlisted,
		Message: pointer.To("Please fix the images"),
	})
	requireCode(t, err, apperr.CodeForbidden)

	path, err = service.UpdatePathStatus(ctx, moderator, 7, learningpath.UpdateLearningPathStatus{
		Status:  learningpath.StatusUnlisted,
		Message: pointer.To("Please fix the images"),
	})
	require.NoError(t, err)
	require.NotNil(t, path.Message)
	assert.Equal(t, "Please fix the images", path.Message.Message)

	_, err = service.UpdatePathStatus(ctx, owner, 7, learningpath.UpdateLearningPathStatus{Status: learningpath.StatusDeleted})
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, 7)
	requireCode(t, err, apperr.CodeNotFound)
}

func TestService_CopyPath(t *testing.T) {
	ctx := context.Background()
	source := samplePath()
	source.Status = learningpath.StatusPublished
	source.Revision = 4
	source.LearningSteps[0].Revision = 3
	service := newTestService(newMemoryRepository(source))

	copied, err := service.CopyPath(ctx, stranger, 7, learningpath.CopyLearningPathV2{Title: pointer.To("Min algebra"), Language: "nb"})
	require.NoError(t, err)

	assert.NotEqual(t, int64(7), copied.ID)
	assert.Equal(t, 1, copied.Revision)
	require.NotNil(t, copied.IsBasedOn)
	assert.Equal(t, int64(7), *copied.IsBasedOn)
	assert.Equal(t, learningpath.StatusPrivate, copied.Status)
	assert.Equal(t, stranger.UserID, *copied.OwnerID)
	assert.Equal(t, "Min algebra", copied.Titles[0].Title)
	require.Len(t, copied.LearningSteps, 2)
	for _, step := range copied.LearningSteps {
		assert.Equal(t, 1, step.Revision)
		assert.NotContains(t, []int64{11, 12}, step.ID)
	}

	_, err = service.CopyPath(ctx, sec.Principal{}, 7, learningpath.CopyLearningPathV2{})
	requireCode(t, err, apperr.CodeUnauthorized)

	// Deleting the source leaves the copy untouched and still pointing at it
	require.NoError(t, service.DeletePath(ctx, owner, 7))
	reloaded, err := service.GetPath(ctx, stranger, copied.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.IsBasedOn)
	assert.Equal(t, int64(7), *reloaded.IsBasedOn)
	assert.Equal(t, 1, reloaded.Revision)
}

func TestService_UpdateVerification(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(samplePath()))
	verified := learningpath.UpdateLearningPathVerification{VerificationStatus: learningpath.VerificationVerified}

	_, err := service.UpdateVerification(ctx, owner, 7, verified)
	requireCode(t, err, apperr.CodeForbidden)

	path, err := service.UpdateVerification(ctx, moderator, 7, verified)
	require.NoError(t, err)
	assert.Equal(t, learningpath.VerificationVerified, path.VerificationStatus)
	assert.Equal(t, 2, path.Revision)
}

func TestService_DeletePath(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository(samplePath())
	service := newTestService(repo)

	requireCode(t, service.DeletePath(ctx, stranger, 7), apperr.CodeForbidden)
	require.NoError(t, service.DeletePath(ctx, moderator, 7))

	_, err := repo.FindByID(ctx, 7)
	requireCode(t, err, apperr.CodeNotFound)
}

func TestService_SearchPaths(t *testing.T) {
	ctx := context.Background()
	published := samplePath()
	published.Status = learningpath.StatusPublished
	service := newTestService(newMemoryRepository(published))

	paths, total, err := service.SearchPaths(ctx, learningpath.SearchFilter{Language: "*"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, paths, 1)

	_, total, err = service.SearchPaths(ctx, learningpath.SearchFilter{Language: "NB"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, _, err = service.SearchPaths(ctx, learningpath.SearchFilter{Sort: "title"})
	requireCode(t, err, apperr.CodeValidation)

	_, _, err = service.SearchPaths(ctx, learningpath.SearchFilter{Language: "not a tag"})
	requireCode(t, err, apperr.CodeValidation)
}

func TestService_ListMine(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(samplePath()))

	paths, total, err := service.ListMine(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(7), paths[0].ID)

	_, total, err = service.ListMine(ctx, stranger, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = service.ListMine(ctx, sec.Principal{}, 10, 0)
	requireCode(t, err, apperr.CodeUnauthorized)
}
