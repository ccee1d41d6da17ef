// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Card model
// and its likes set.
//
// Likes are rows in card_likes keyed by (card_id, user_id). Both toggle
// operations are single atomic statements that are total over their inputs:
// AddLike uses an insert-or-ignore so re-liking is a no-op, RemoveLike uses a
// plain delete so removing an absent like is a no-op. No like mutation ever
// reads the set first, which rules out lost updates between concurrent
// requests.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pdanilin/go-mesto-backend/internal/domain"
)

// CreateCard inserts a new card row owned by ownerID. The ID is a generated
// UUID, CreatedAt is UTC, and the likes set starts empty.
func CreateCard(ctx context.Context, db *gorm.DB, ownerID, name, link string) (*domain.Card, error) {
	c := &domain.Card{
		ID:        uuid.NewString(),
		Name:      name,
		Link:      link,
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetCard fetches a single card by ID with its likes populated, or
// ErrNotFound if missing.
func GetCard(ctx context.Context, db *gorm.DB, id string) (*domain.Card, error) {
	var c domain.Card
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	likes, err := likesByCard(ctx, db, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.Likes = likes[c.ID]
	return &c, nil
}

// ListCards returns all cards in insertion order with likes populated. The
// likes of all cards are batch-loaded in one query.
func ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	out := make([]domain.Card, 0)
	if err := db.WithContext(ctx).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	likes, err := likesByCard(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Likes = likes[out[i].ID]
	}
	return out, nil
}

// DeleteCard removes a card and its likes permanently, in one transaction.
// Returns ErrNotFound when no card row was deleted.
func DeleteCard(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.CardLike{}, "card_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Card{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddLike inserts userID into the card's likes set. Inserting an ID that is
// already present is a no-op thanks to ON CONFLICT DO NOTHING on the
// composite primary key. Existence of the card is the caller's concern.
func AddLike(ctx context.Context, db *gorm.DB, cardID, userID string) error {
	like := &domain.CardLike{
		CardID:    cardID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error
}

// RemoveLike deletes userID from the card's likes set. Removing an ID that
// is not present (or a like of a nonexistent card) affects zero rows and is
// not an error; existence of the card is the caller's concern.
func RemoveLike(ctx context.Context, db *gorm.DB, cardID, userID string) error {
	return db.WithContext(ctx).
		Delete(&domain.CardLike{}, "card_id = ? AND user_id = ?", cardID, userID).Error
}

// CardsStats returns cheap aggregates over cards and likes, used to derive a
// weak ETag for the card list: row counts plus the newest creation times of
// both tables.
func CardsStats(ctx context.Context, db *gorm.DB) (cards, likes int64, lastCard, lastLike *time.Time, err error) {
	if err = db.WithContext(ctx).Model(&domain.Card{}).Count(&cards).Error; err != nil {
		return
	}
	if err = db.WithContext(ctx).Model(&domain.CardLike{}).Count(&likes).Error; err != nil {
		return
	}
	row := struct{ C, L *time.Time }{}
	err = db.WithContext(ctx).Raw(
		"SELECT (SELECT MAX(created_at) FROM cards) AS c, (SELECT MAX(created_at) FROM card_likes) AS l",
	).Scan(&row).Error
	lastCard, lastLike = row.C, row.L
	return
}

// likesByCard loads the likes sets of the given cards as a map keyed by card
// ID. Every requested card gets an entry, so missing keys never surface as
// null in JSON. Within a set, user IDs are in like-creation order.
func likesByCard(ctx context.Context, db *gorm.DB, cardIDs []string) (map[string][]string, error) {
	rows := make([]domain.CardLike, 0)
	err := db.WithContext(ctx).
		Where("card_id IN ?", cardIDs).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(cardIDs))
	for _, id := range cardIDs {
		out[id] = []string{}
	}
	for _, r := range rows {
		out[r.CardID] = append(out[r.CardID], r.UserID)
	}
	return out, nil
}
