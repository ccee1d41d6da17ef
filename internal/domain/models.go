// Package domain defines the persistence models for users, cards, and card
// likes. These types are mapped with GORM and form the core data layer of
// the Mesto backend.
package domain

import (
	"time"
)

// Validation bounds and defaults for user and card fields. The defaults are
// applied when an optional field is omitted at registration time; the bounds
// are enforced by the validation rule tables.
const (
	UserNameMinLen  = 2
	UserNameMaxLen  = 30
	UserAboutMinLen = 2
	UserAboutMaxLen = 200

	CardNameMinLen = 2
	CardNameMaxLen = 30

	UserNameDefault   = "Жак-Ив Кусто"
	UserAboutDefault  = "Исследователь"
	UserAvatarDefault = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered account. Email is unique across all users,
// enforced by a database unique index; the password digest is never
// serialized into API responses.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned by the store.
//   - Name / About / Avatar: profile fields with documented defaults.
//   - Email: login identity, unique.
//   - Password: bcrypt digest, excluded from JSON.
type User struct {
	ID        string    `json:"id"     gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"   gorm:"type:varchar(30);not null"`
	About     string    `json:"about"  gorm:"type:varchar(200);not null"`
	Avatar    string    `json:"avatar" gorm:"type:text;not null"`
	Email     string    `json:"email"  gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"      gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Card represents a shared photo card. The owner is the user who created the
// card and is immutable. Likes form a set of user IDs, stored relationally in
// card_likes and serialized as a plain array.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: card caption (2–30 runes).
//   - Link: image URL.
//   - OwnerID: foreign key to the creating user (indexed).
//   - Likes: user IDs that currently like the card; populated by the
//     repository, not mapped as a column.
type Card struct {
	ID        string    `json:"id"    gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"  gorm:"type:varchar(30);not null"`
	Link      string    `json:"link"  gorm:"type:text;not null"`
	OwnerID   string    `json:"owner" gorm:"type:char(36);not null;index:idx_owner_cards"`
	Likes     []string  `json:"likes" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner is the creating user. Cards are cascade-deleted if their owner
	// is removed.
	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Card.
func (Card) TableName() string { return "cards" }

// CardLike is one membership row of a card's likes set. The composite primary
// key (card_id, user_id) makes duplicate likes impossible at the store level,
// which is what keeps the like toggle idempotent under concurrency.
type CardLike struct {
	CardID    string    `json:"card_id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	// Card is the liked card. Likes are cascade-deleted with the card.
	Card Card `json:"-" gorm:"foreignKey:CardID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CardLike.
func (CardLike) TableName() string { return "card_likes" }
