// Package messages composes the user-facing strings returned in error
// envelopes. These strings are part of the external API contract: clients
// match on them, so changes here are breaking changes and every composer is
// pinned by tests.
package messages

import "fmt"

// Validation reason tokens. The token itself is the contract: clients branch
// on "minLength"/"maxLength"/... inside validation failure messages.
const (
	MinLength    = "minLength"
	MaxLength    = "maxLength"
	InvalidName  = "invalidName"
	InvalidURL   = "invalidUrl"
	InvalidEmail = "invalidEmail"
	Required     = "required"
)

// RouteNotFound is the message for requests that match no registered route.
const RouteNotFound = "Not found"

// AuthRequired is the message for requests that reach a protected route
// without a valid bearer token.
const AuthRequired = "authorization required"

// InvalidCredentials is the uniform login failure message. It is identical
// for unknown email and wrong password so the endpoint cannot be used to
// probe which emails are registered.
const InvalidCredentials = "incorrect email or password"

// NotFound formats the lookup failure message for an entity, e.g.
// "user not found", "card not found".
func NotFound(entity string) string {
	return entity + " not found"
}

// ExistsEmail formats the duplicate-registration conflict message, naming
// the email that is already taken.
func ExistsEmail(email string) string {
	return fmt.Sprintf("user with email %s already exists", email)
}

// ValidationFailed formats a field validation failure, e.g.
// "user validation failed: name: maxLength".
func ValidationFailed(entity, field, reason string) string {
	return fmt.Sprintf("%s validation failed: %s: %s", entity, field, reason)
}

// ForbiddenCardDelete is returned when the owner-only delete policy rejects
// a caller that does not own the card.
const ForbiddenCardDelete = "cannot delete another user's card"
