// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the typed keys for per-request values. Only ctxutil
// should read or write them.
package ctxkey

// Key is distinct from every other context key type, so lookups never collide.
type Key int

const (
	// RequestID carries the X-Request-ID correlation value.
	RequestID Key = iota + 1
	// Claims carries the verified *sec.AuthClaims of the caller.
	Claims
	// Logger carries the request-scoped *slog.Logger.
	Logger
)

// String names the key in debug output.
func (key Key) String() string {
	switch key {
	case RequestID:
		return "request_id"
	case Claims:
		return "claims"
	case Logger:
		return "logger"
	}
	return "unknown"
}
