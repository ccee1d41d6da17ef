// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides ErrorHandler, the single place where errors become HTTP
// responses. Every other layer raises a typed *apperr.Error (validator,
// services, auth gate, recovery) or a raw error and attaches it to the Gin
// context; nothing below this middleware writes an error body itself. The
// rendered envelope is always {"status":"fail","message":...}.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
)

// failBody is the uniform error envelope.
type failBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorHandler renders the first error collected during the request as the
// uniform fail envelope. Unknown errors are converted by apperr.From, which
// redacts internal details; the original error is still visible in the access
// log via c.Errors. Responses already written downstream are left untouched.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		e := apperr.From(c.Errors[0].Err)
		if e.Status >= 500 {
			LoggerFrom(c).Error().Err(c.Errors[0].Err).Msg("request failed")
		}
		c.JSON(e.Status, failBody{Status: "fail", Message: e.Message})
	}
}
