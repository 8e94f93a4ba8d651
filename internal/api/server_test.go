// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/learnpath/internal/api"
	"github.com/taibuivan/learnpath/internal/core/configmeta"
	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/config"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

type rejectingVerifier struct{}

func (rejectingVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("invalid token")
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	}, logger)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, logger, rejectingVerifier{}, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Language:     language.NewHandler(language.NewService(nil, language.Policy{}, logger)),
		LearningPath: learningpath.NewHandler(nil, nil),
		Config:       configmeta.NewHandler(nil),
	})
	return server.Handler()
}

func TestServer_Routing(t *testing.T) {
	handler := newTestServer(t)

	cases := []struct {
		name   string
		method string
		target string
		auth   string
		code   int
		body   string
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK, `"status":"ok"`},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"wrong method", http.MethodPost, "/health", "", http.StatusMethodNotAllowed, `"code":"METHOD_NOT_ALLOWED"`},
		{"bad token", http.MethodGet, "/health", "Bearer forged", http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
		{"moderation needs auth", http.MethodPut, "/api/v1/learningpaths/7/verification", "", http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
		{"writes need auth", http.MethodPost, "/api/v1/learningpaths", "", http.StatusUnauthorized, `"occuredAt"`},
		{"config writes need auth", http.MethodPut, "/api/v1/config/LEARNINGPATH_WRITE_RESTRICTED", "", http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.auth != "" {
				request.Header.Set("Authorization", tc.auth)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tc.code, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.body)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}
