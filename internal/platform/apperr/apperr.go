// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Learnpath.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Attribution: The offending entity id and field travel with the error.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// # Error Codes

// Generic codes shared by every domain.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Consistency codes reported by the language and learning path validators.
// They are part of the wire contract and must never be renamed.
const (
	CodeIncompleteTranslation   = "INCOMPLETE_TRANSLATION"
	CodeLanguageNotFound        = "LANGUAGE_NOT_FOUND"
	CodeLanguageSetMismatch     = "LANGUAGE_SET_MISMATCH"
	CodeStaleRevision           = "STALE_REVISION"
	CodeInvalidRevision         = "INVALID_REVISION"
	CodeInvalidBasedOn          = "INVALID_BASED_ON"
	CodeInvalidStepOrder        = "INVALID_STEP_ORDER"
	CodeIllegalStatusTransition = "ILLEGAL_STATUS_TRANSITION"
	CodeNotReadyToPublish       = "NOT_READY_TO_PUBLISH"
	CodeAmbiguousStepPayload    = "AMBIGUOUS_STEP_PAYLOAD"
	CodeEmptyStepPayload        = "EMPTY_STEP_PAYLOAD"
)

// now is replaced in tests that need a fixed OccurredAt.
var now = func() time.Time { return time.Now().UTC() }

// AppError is the canonical error type for the Learnpath API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "STALE_REVISION").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"description"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
	// EntityID identifies the learning path or step the error is about, when known.
	EntityID *int64 `json:"entityId,omitempty"`
	// Field is the offending field path (e.g. "learningsteps.seqNo").
	Field string `json:"field,omitempty"`
	// OccurredAt is the moment the error was raised.
	OccurredAt time.Time `json:"occuredAt"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two AppErrors by code so callers can write errors.Is(err, apperr.StaleRevision(...)).
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithEntity attaches the offending entity id and returns the same error.
func (e *AppError) WithEntity(id int64) *AppError {
	e.EntityID = &id
	return e
}

// WithField attaches the offending field path and returns the same error.
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// New creates an [AppError] with an arbitrary code and status.
func New(code string, status int, msg string) *AppError {
	return &AppError{
		Code:       code,
		Message:    msg,
		HTTPStatus: status,
		OccurredAt: now(),
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Learning path") // Returns "Learning path not found"
func NotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return New(CodeUnauthorized, http.StatusUnauthorized, msg)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return New(CodeForbidden, http.StatusForbidden, msg)
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return New(CodeConflict, http.StatusConflict, msg)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	e := New(CodeValidation, http.StatusBadRequest, msg)
	e.Details = details
	return e
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return New(CodeUnprocessable, http.StatusUnprocessableEntity, msg)
}

// # Consistency Errors

// IncompleteTranslation reports a language present in one field group but missing from a paired one.
func IncompleteTranslation(field, language string) *AppError {
	return New(CodeIncompleteTranslation, http.StatusUnprocessableEntity,
		fmt.Sprintf("Field '%s' has no translation for language '%s'", field, language)).WithField(field)
}

// LanguageNotFound reports that neither the requested nor the fallback language exists.
func LanguageNotFound(requested, fallback string) *AppError {
	return New(CodeLanguageNotFound, http.StatusNotFound,
		fmt.Sprintf("Language '%s' not found (fallback '%s' not available either)", requested, fallback)).WithField("language")
}

// LanguageSetMismatch reports a declared supportedLanguages set that differs from the computed one.
func LanguageSetMismatch(declared, computed []string) *AppError {
	return New(CodeLanguageSetMismatch, http.StatusUnprocessableEntity,
		fmt.Sprintf("supportedLanguages %v does not match languages present in fields %v", declared, computed)).WithField("supportedLanguages")
}

// StaleRevision reports an update based on an outdated revision.
func StaleRevision(got, want int) *AppError {
	return New(CodeStaleRevision, http.StatusConflict,
		fmt.Sprintf("Revision %d is stale, expected %d", got, want)).WithField("revision")
}

// InvalidRevision reports a malformed revision on creation.
func InvalidRevision(got int) *AppError {
	return New(CodeInvalidRevision, http.StatusUnprocessableEntity,
		fmt.Sprintf("Revision %d is invalid for a new entity, expected 1", got)).WithField("revision")
}

// InvalidBasedOn reports a path that claims to be based on itself.
func InvalidBasedOn(id int64) *AppError {
	return New(CodeInvalidBasedOn, http.StatusUnprocessableEntity,
		fmt.Sprintf("isBasedOn must reference another learning path, got own id %d", id)).WithField("isBasedOn")
}

// InvalidStepOrder reports the first seqNo breaking the contiguous 0..n-1 sequence.
func InvalidStepOrder(seqNo int) *AppError {
	return New(CodeInvalidStepOrder, http.StatusUnprocessableEntity,
		fmt.Sprintf("Step order is not contiguous at seqNo %d", seqNo)).WithField("learningsteps.seqNo")
}

// IllegalStatusTransition reports a status change outside the transition table.
func IllegalStatusTransition(from, to string) *AppError {
	if from == "" {
		from = "<none>"
	}
	return New(CodeIllegalStatusTransition, http.StatusUnprocessableEntity,
		fmt.Sprintf("Cannot change status from %s to %s", from, to)).WithField("status")
}

// NotReadyToPublish reports the first missing publication requirement.
func NotReadyToPublish(missing string) *AppError {
	return New(CodeNotReadyToPublish, http.StatusUnprocessableEntity,
		fmt.Sprintf("Learning path is not ready to publish: missing %s", missing)).WithField(missing)
}

// AmbiguousStepPayload reports a step whose payload does not match its type.
func AmbiguousStepPayload(reason string) *AppError {
	return New(CodeAmbiguousStepPayload, http.StatusUnprocessableEntity,
		"Learning step payload is ambiguous: "+reason).WithField("learningsteps.payload")
}

// EmptyStepPayload reports a step type that requires a payload but has none.
func EmptyStepPayload(stepType string) *AppError {
	return New(CodeEmptyStepPayload, http.StatusUnprocessableEntity,
		fmt.Sprintf("Learning step of type %s requires an embedUrl", stepType)).WithField("learningsteps.embedUrl")
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	e := New(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	e.Cause = cause
	return e
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return New(CodeServiceUnavailable, http.StatusServiceUnavailable, msg)
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
