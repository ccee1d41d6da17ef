// Package services defines the business logic for users, cards, and
// authentication. Services validate input against the declarative schemas in
// the validation package, coordinate repository operations, and return typed
// *apperr.Error values for every predictable failure so the handler layer
// renders them without interpreting anything.
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

// UserService implements the use-cases around user profiles: registration
// (create with defaults), fetching a single profile, and listing all profiles.
type UserService struct {
	// DB is the database handle used for all user operations.
	DB *gorm.DB
	// Hasher turns plaintext passwords into bcrypt digests.
	Hasher *auth.PasswordHasher
}

// CreateUserInput carries the raw registration payload. Pointer fields
// distinguish "absent" from "empty string": absent name, about, and avatar
// fall back to profile defaults, while email and password are required.
type CreateUserInput struct {
	Name     *string
	About    *string
	Avatar   *string
	Email    *string
	Password *string
}

// Create validates the payload, applies profile defaults for omitted fields,
// hashes the password, and inserts the user in a single atomic statement.
//
// Errors:
//   - validation failures surface as 400 with the offending field and reason
//   - a taken email surfaces as 409, detected by the unique-index rejection
//     rather than a prior read, so concurrent same-email registrations cannot
//     both succeed
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	vals, err := validation.User.Validate(map[string]*string{
		"name":     in.Name,
		"about":    in.About,
		"avatar":   in.Avatar,
		"email":    in.Email,
		"password": in.Password,
	})
	if err != nil {
		return nil, err
	}

	digest, err := s.Hasher.Hash(vals["password"])
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, vals["name"], vals["about"], vals["avatar"], vals["email"], digest)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperr.IsDuplicate(err) {
			return nil, apperr.Conflict(messages.ExistsEmail(vals["email"]))
		}
		return nil, err
	}
	return u, nil
}

// Get returns a single user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(messages.NotFound("user"))
		}
		return nil, err
	}
	return u, nil
}

// List returns all users in creation order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB)
}
