// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by middleware:
// request id, logger and the caller's verified claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/learnpath/internal/platform/ctxkey"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns the correlation id or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.RequestID).(string)
	return id
}

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger returns the request-scoped logger, or [slog.Default] outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.Logger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAuthUser attaches verified claims. Nil claims leave the caller anonymous.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.Claims, claims)
}

// GetAuthUser returns the verified claims or nil for anonymous callers.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.Claims).(*sec.AuthClaims)
	return claims
}

// Principal is the caller identity used for ownership checks and canEdit.
func Principal(ctx context.Context) sec.Principal {
	return sec.PrincipalFrom(GetAuthUser(ctx))
}
