// Authentication HTTP handlers.
//
// This file exposes the two public endpoints:
//   - POST /register  (create an account)
//   - POST /login     (exchange credentials for a token)
//
// Both sit on the auth gate's allowlist; everything else requires a token.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/services"
)

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    *string `json:"email" example:"marie@example.com"`
	Password *string `json:"password" example:"s3cr3t-pass"`
}

// TokenResponse carries the signed access token returned by login.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register godoc
// @ID          register
// @Summary     Register a new account
// @Description Creates a user account. Same semantics as POST /users, reachable without a token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.SuccessResponse{data=domain.User}
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.BadRequest("invalid JSON body"))
		return
	}
	u, err := h.authSvc.Register(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, u)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a signed bearer token. The failure message never reveals whether the email exists.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.SuccessResponse{data=handlers.TokenResponse}
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Incorrect email or password"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.BadRequest("invalid JSON body"))
		return
	}
	tok, err := h.authSvc.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, TokenResponse{Token: tok})
}
