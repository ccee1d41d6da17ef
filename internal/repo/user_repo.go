// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A duplicate email insert is rejected by the ux_users_email unique
//     index; the raw constraint error is propagated for the service layer to
//     translate into a Conflict. This database rejection, not any prior
//     read, is what closes the race between concurrent same-email inserts.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pdanilin/go-mesto-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a new user row with the given normalized profile fields
// and password digest. The ID is a generated UUID and CreatedAt is UTC.
//
// The insert is a single atomic statement; if the email is already taken the
// unique index rejects it and the constraint error is returned.
func CreateUser(ctx context.Context, db *gorm.DB, name, about, avatar, email, passwordDigest string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		About:     about,
		Avatar:    avatar,
		Email:     email,
		Password:  passwordDigest,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a single user by ID, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users in insertion order (creation time ascending).
// It returns an empty slice when the table is empty.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := make([]domain.User, 0)
	err := db.WithContext(ctx).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// FindUserByEmail fetches a single user by email, or ErrNotFound if no user
// registered with it. Used by login.
func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
