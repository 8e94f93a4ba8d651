// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/learnpath/internal/platform/constants"
	"github.com/taibuivan/learnpath/internal/platform/respond"
)

// readinessTimeout bounds every dependency check of a readiness probe.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client. The API keeps serving without the cache,
	// so a failure here reports "degraded" but not unready.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	context, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	// Both probes run concurrently; a failing check never cancels the other.
	var database, cache *checkResult
	var group errgroup.Group
	if check := handler.dependencies.CheckDatabase; check != nil {
		group.Go(func() error {
			result := handler.run(context, "postgres", check)
			database = &result
			return nil
		})
	}
	if check := handler.dependencies.CheckCache; check != nil {
		group.Go(func() error {
			result := handler.run(context, "redis", check)
			cache = &result
			return nil
		})
	}
	_ = group.Wait()

	results := make([]checkResult, 0, 2)
	status := "ready"
	httpStatus := http.StatusOK

	if database != nil {
		if !database.IsOK {
			status = "unavailable"
			httpStatus = http.StatusServiceUnavailable
		}
		results = append(results, *database)
	}
	if cache != nil {
		if !cache.IsOK && httpStatus == http.StatusOK {
			status = "degraded"
		}
		results = append(results, *cache)
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}

func (handler *healthHandler) run(context context.Context, name string, check func(context.Context) error) checkResult {
	result := checkResult{Name: name, IsOK: true}
	if err := check(context); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.ErrorContext(context, "readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
	}
	return result
}
