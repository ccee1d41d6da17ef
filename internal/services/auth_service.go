// Package services – AuthService
//
// This file implements the AuthService, which handles registration and login.
// Registration delegates to UserService.Create and wraps the result in a
// signed token. Login verifies credentials and deliberately answers every
// failure mode with the same message so callers cannot probe which emails are
// registered.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/auth"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
	"github.com/pdanilin/go-mesto-backend/internal/repo"
	"github.com/pdanilin/go-mesto-backend/internal/validation"
)

// AuthService implements registration and credential login.
type AuthService struct {
	// DB is the database handle used for credential lookups.
	DB *gorm.DB
	// Users creates accounts during registration.
	Users *UserService
	// Tokens signs and verifies access tokens.
	Tokens *auth.TokenManager
}

// LoginInput carries the raw login payload.
type LoginInput struct {
	Email    *string
	Password *string
}

// Register creates a user account. The response carries the profile only;
// clients obtain a token through Login.
func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	return s.Users.Create(ctx, in)
}

// Login checks the credentials and returns a signed token on success.
//
// An unknown email and a wrong password both produce the same 401 with the
// same message. The bcrypt comparison runs only for known emails, which keeps
// the timing difference small and the response body identical.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	vals, err := validation.Login.Validate(map[string]*string{
		"email":    in.Email,
		"password": in.Password,
	})
	if err != nil {
		return "", err
	}

	u, err := repo.FindUserByEmail(ctx, s.DB, vals["email"])
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", apperr.Unauthorized(messages.InvalidCredentials)
		}
		return "", err
	}
	if !s.Users.Hasher.Compare(u.Password, vals["password"]) {
		return "", apperr.Unauthorized(messages.InvalidCredentials)
	}
	return s.Tokens.Sign(u.ID)
}
