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
)

func probe(handler http.HandlerFunc) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	return recorder
}

func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		deps   api.HealthDependencies
		code   int
		status string
	}{
		{"all healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, `"status":"ready"`},
		{"cache down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusOK, `"status":"degraded"`},
		{"database down", api.HealthDependencies{CheckDatabase: broken, CheckCache: healthy}, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			liveness, readiness := api.NewHealthHandlers(tc.deps, logger)

			recorder := probe(readiness)
			assert.Equal(t, tc.code, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tc.status)

			assert.Equal(t, http.StatusOK, probe(liveness).Code)
		})
	}
}
