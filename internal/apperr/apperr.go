// Package apperr defines the structured API error used as the unit of
// failure propagation across the request pipeline. Errors are raised at the
// point of detection (validator, services, auth gate) and travel unmodified
// to the terminal error-rendering middleware; From is the converter that
// turns anything else into a safe internal error.
package apperr

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/pdanilin/go-mesto-backend/internal/messages"
)

// Kind is the taxonomy bucket of an API error.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation_failed"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// Error is a structured API error carrying an HTTP status, a taxonomy kind,
// and the user-facing message. For validation failures Entity and Field
// identify the offending input. Errors are ephemeral: constructed per
// failing request, never persisted.
type Error struct {
	Status  int
	Kind    Kind
	Message string

	// Entity and Field are set for validation failures only.
	Entity string
	Field  string
}

// Error implements the error interface; the result is the user-facing
// message, safe to render.
func (e *Error) Error() string { return e.Message }

// NotFound returns a 404 error with the given message.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

// Conflict returns a 409 error with the given message.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Kind: KindConflict, Message: msg}
}

// Unauthorized returns a 401 error with the given message.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindUnauthorized, Message: msg}
}

// Forbidden returns a 403 error with the given message.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Kind: KindForbidden, Message: msg}
}

// TooManyRequests returns a 429 error, raised by the rate limiter.
func TooManyRequests() *Error {
	return &Error{Status: http.StatusTooManyRequests, Kind: KindRateLimited, Message: "rate limit exceeded"}
}

// Internal returns a 500 error with a redacted, generic message. Callers log
// the underlying cause themselves; it must never reach the client.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindInternal, Message: "internal server error"}
}

// Validation returns a 400 error for a failed field check. The message is
// composed from the contract strings in the messages package and reason must
// be one of its reason tokens.
func Validation(entity, field, reason string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Kind:    KindValidation,
		Message: messages.ValidationFailed(entity, field, reason),
		Entity:  entity,
		Field:   field,
	}
}

// BadRequest returns a 400 validation-kind error with a literal message,
// used for malformed request bodies where no single field is at fault.
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

// From converts an arbitrary error into an *Error. Structured errors pass
// through untouched; known store-layer signals are mapped to the taxonomy;
// everything else becomes an internal error with a redacted message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(messages.NotFound("resource"))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || IsDuplicate(err) {
		return Conflict("duplicate key")
	}
	return Internal()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	// SQLite: "UNIQUE constraint failed"; Postgres: "duplicate key value
	// violates unique constraint".
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// IsForeignKey detects foreign-key constraint violations across drivers that
// may not map to gorm.ErrForeignKeyViolated.
func IsForeignKey(err error) bool {
	if err == nil {
		return false
	}
	// SQLite: "FOREIGN KEY constraint failed"; Postgres: "violates foreign
	// key constraint".
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
