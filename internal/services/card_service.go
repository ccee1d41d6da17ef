// Package services – CardService
//
// This file implements the CardService, which manages the card collection and
// its likes. Card creation validates against the declarative card schema;
// deletion enforces the configurable owner-only policy; like and unlike are
// idempotent toggles backed by single atomic statements in the repository.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
	"github.com/pdanilin/go-mesto-backend/internal/repo"
	"github.com/pdanilin/go-mesto-backend/internal/validation"
)

// CardService implements the use-cases around cards and their likes.
type CardService struct {
	// DB is the database handle used for all card operations.
	DB *gorm.DB
	// OwnerOnlyDelete restricts card deletion to the card's owner when true.
	// When false any authenticated user may delete any card.
	OwnerOnlyDelete bool
}

// CreateCardInput carries the raw card payload. Both fields are required;
// pointers let validation distinguish an omitted field from an empty one.
type CreateCardInput struct {
	Name *string
	Link *string
}

// Create validates the payload and inserts a card owned by ownerID.
func (s *CardService) Create(ctx context.Context, ownerID string, in CreateCardInput) (*domain.Card, error) {
	vals, err := validation.Card.Validate(map[string]*string{
		"name": in.Name,
		"link": in.Link,
	})
	if err != nil {
		return nil, err
	}
	return repo.CreateCard(ctx, s.DB, ownerID, vals["name"], vals["link"])
}

// Get returns a single card with its likes.
func (s *CardService) Get(ctx context.Context, id string) (*domain.Card, error) {
	c, err := repo.GetCard(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(messages.NotFound("card"))
		}
		return nil, err
	}
	return c, nil
}

// List returns all cards in creation order with likes populated.
func (s *CardService) List(ctx context.Context) ([]domain.Card, error) {
	return repo.ListCards(ctx, s.DB)
}

// Delete removes a card permanently, likes included.
//
// When OwnerOnlyDelete is set, callers other than the card's owner get a 403.
// The ownership check reads the card first, so a missing card is reported as
// 404 before any policy decision.
func (s *CardService) Delete(ctx context.Context, callerID, cardID string) error {
	if s.OwnerOnlyDelete {
		c, err := s.Get(ctx, cardID)
		if err != nil {
			return err
		}
		if c.OwnerID != callerID {
			return apperr.Forbidden(messages.ForbiddenCardDelete)
		}
	}
	if err := repo.DeleteCard(ctx, s.DB, cardID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(messages.NotFound("card"))
		}
		return err
	}
	return nil
}

// SetLike adds callerID to the card's likes set and returns the updated card.
// Liking an already-liked card is a no-op that still returns the card.
//
// The insert runs before the existence check: for an existing card this is a
// blind atomic upsert immune to concurrent toggles. A missing card surfaces
// as 404 from the follow-up read; any like row the insert left behind for it
// is removed on that path.
func (s *CardService) SetLike(ctx context.Context, callerID, cardID string) (*domain.Card, error) {
	if err := repo.AddLike(ctx, s.DB, cardID, callerID); err != nil {
		// Strict foreign keys reject likes of nonexistent cards outright.
		// Any other insert failure is a store fault, not a missing card.
		if errors.Is(err, gorm.ErrForeignKeyViolated) || apperr.IsForeignKey(err) {
			return nil, apperr.NotFound(messages.NotFound("card"))
		}
		return nil, err
	}
	c, err := s.Get(ctx, cardID)
	if err != nil {
		_ = repo.RemoveLike(ctx, s.DB, cardID, callerID)
		return nil, err
	}
	return c, nil
}

// RemoveLike deletes callerID from the card's likes set and returns the
// updated card. Removing an absent like is a no-op that still returns the
// card; a missing card is a 404.
func (s *CardService) RemoveLike(ctx context.Context, callerID, cardID string) (*domain.Card, error) {
	if err := repo.RemoveLike(ctx, s.DB, cardID, callerID); err != nil {
		return nil, err
	}
	return s.Get(ctx, cardID)
}
