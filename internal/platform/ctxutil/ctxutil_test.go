// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/platform/ctxkey"
	"github.com/taibuivan/learnpath/internal/platform/ctxutil"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0190f1d2-req")
	assert.Equal(t, "0190f1d2-req", ctxutil.GetRequestID(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))
}

func TestPrincipal(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.True(t, ctxutil.Principal(ctx).IsAnonymous())

	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "user-1", Role: "moderator"})
	require.NotNil(t, ctxutil.GetAuthUser(ctx))

	principal := ctxutil.Principal(ctx)
	assert.Equal(t, "user-1", principal.UserID)
	assert.True(t, principal.IsModerator())
}

func TestKeysDoNotCollideWithStrings(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "plain-string-key") //nolint:staticcheck
	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, "request_id", ctxkey.RequestID.String())
}
