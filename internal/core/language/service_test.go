// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

type fakeRepository struct {
	langs []*language.Language
}

func (r *fakeRepository) ListLanguages(_ context.Context) ([]*language.Language, error) {
	return r.langs, nil
}

func (r *fakeRepository) GetLanguageByCode(_ context.Context, code string) (*language.Language, error) {
	for _, lang := range r.langs {
		if language.Same(lang.Code, code) {
			return lang, nil
		}
	}
	return nil, apperr.NotFound("Language")
}

func newService() *language.Service {
	repo := &fakeRepository{langs: []*language.Language{
		{ID: 1, Code: "nb", Name: "Norwegian Bokmål", NativeName: "Norsk bokmål"},
		{ID: 2, Code: "nn", Name: "Norwegian Nynorsk", NativeName: "Norsk nynorsk"},
		{ID: 3, Code: "en", Name: "English", NativeName: "English"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return language.NewService(repo, language.DefaultPolicy("nb"), logger)
}

func TestService_EnsureKnown(t *testing.T) {
	service := newService()

	assert.NoError(t, service.EnsureKnown(context.Background(), []string{"nb", "en"}))
	assert.NoError(t, service.EnsureKnown(context.Background(), nil))

	err := service.EnsureKnown(context.Background(), []string{"nb", "de", "sv"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 2)
}

func TestHandler_Routes(t *testing.T) {
	router := language.NewHandler(newService()).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"nativeName":"Norsk nynorsk"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/en", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/xx", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
}
