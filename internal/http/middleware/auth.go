// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the authentication gate. It runs as engine-level
// middleware before routing decisions matter, so an unauthenticated request
// to an unknown path is answered 401, never 404: route existence is not
// disclosed to anonymous callers.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/auth"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
)

// TokenVerifier validates a bearer token and returns the caller's user ID.
// *auth.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthGate returns a middleware that requires a valid bearer token on every
// request except the listed public paths (exact match) and public prefixes.
// On success the caller's user ID is stored in the Gin context under
// "userID"; on failure a 401 is raised with one uniform message regardless
// of whether the token was missing, malformed, expired, or forged.
func AuthGate(tokens TokenVerifier, public map[string]struct{}, publicPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := public[path]; ok {
			c.Next()
			return
		}
		for _, p := range publicPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		uid, err := tokens.Verify(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			_ = c.Error(apperr.Unauthorized(messages.AuthRequired))
			c.Abort()
			return
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserID returns the authenticated caller's ID set by AuthGate, empty when
// the request did not pass the gate.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme comparison is case-insensitive; anything else
// yields an empty string, which Verify rejects.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

var _ TokenVerifier = (*auth.TokenManager)(nil)
