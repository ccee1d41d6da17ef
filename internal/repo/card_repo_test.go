package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, id string) *domain.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, "Owner", "about me", "https://e.com/a.png", id+"@e.com", "digest")
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

func TestCreateCard_PersistsWithEmptyLikes(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "o1")

	c, err := CreateCard(context.Background(), db, owner.ID, "Lake", "https://e.com/lake.png")
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if c.ID == "" || c.OwnerID != owner.ID {
		t.Fatalf("unexpected card fields: %+v", c)
	}
	if c.Likes == nil || len(c.Likes) != 0 {
		t.Fatalf("new card likes must be an empty slice, got %#v", c.Likes)
	}

	got, err := GetCard(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if got.Name != "Lake" || got.Link != "https://e.com/lake.png" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Likes == nil || len(got.Likes) != 0 {
		t.Fatalf("loaded likes must be an empty slice, got %#v", got.Likes)
	}
}

func TestGetCard_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetCard(context.Background(), db, "someWrongId123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListCards_InsertionOrderAndBatchLikes(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "o1")
	liker := seedUser(t, db, "l1")

	c1, err := CreateCard(context.Background(), db, owner.ID, "First", "https://e.com/1.png")
	if err != nil {
		t.Fatalf("create c1: %v", err)
	}
	c2, err := CreateCard(context.Background(), db, owner.ID, "Second", "https://e.com/2.png")
	if err != nil {
		t.Fatalf("create c2: %v", err)
	}
	if err := AddLike(context.Background(), db, c2.ID, liker.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}

	list, err := ListCards(context.Background(), db)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(list) != 2 || list[0].ID != c1.ID || list[1].ID != c2.ID {
		t.Fatalf("unexpected order: %#v", list)
	}
	if len(list[0].Likes) != 0 || list[0].Likes == nil {
		t.Fatalf("c1 likes: %#v", list[0].Likes)
	}
	if len(list[1].Likes) != 1 || list[1].Likes[0] != liker.ID {
		t.Fatalf("c2 likes: %#v", list[1].Likes)
	}
}

func TestAddLike_Idempotent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "o1")
	c, err := CreateCard(context.Background(), db, owner.ID, "Lake", "https://e.com/lake.png")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := AddLike(context.Background(), db, c.ID, owner.ID); err != nil {
			t.Fatalf("AddLike #%d: %v", i+1, err)
		}
	}

	got, err := GetCard(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if len(got.Likes) != 1 || got.Likes[0] != owner.ID {
		t.Fatalf("double like must keep one entry, got %#v", got.Likes)
	}
}

func TestRemoveLike_AbsentIsNoop(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "o1")
	c, err := CreateCard(context.Background(), db, owner.ID, "Lake", "https://e.com/lake.png")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}

	// Never liked; removing must succeed and change nothing.
	if err := RemoveLike(context.Background(), db, c.ID, owner.ID); err != nil {
		t.Fatalf("RemoveLike absent: %v", err)
	}

	if err := AddLike(context.Background(), db, c.ID, owner.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := RemoveLike(context.Background(), db, c.ID, owner.ID); err != nil {
		t.Fatalf("RemoveLike present: %v", err)
	}
	got, err := GetCard(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if len(got.Likes) != 0 {
		t.Fatalf("likes after remove: %#v", got.Likes)
	}
}

func TestDeleteCard_RemovesLikesToo(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "o1")
	c, err := CreateCard(context.Background(), db, owner.ID, "Lake", "https://e.com/lake.png")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := AddLike(context.Background(), db, c.ID, owner.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}

	if err := DeleteCard(context.Background(), db, c.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	if _, err := GetCard(context.Background(), db, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("card must be gone, got %v", err)
	}
	var n int64
	if err := db.Model(&domain.CardLike{}).Where("card_id = ?", c.ID).Count(&n).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if n != 0 {
		t.Fatalf("likes must be deleted with the card, %d left", n)
	}
}

func TestDeleteCard_NotFound(t *testing.T) {
	db := newTestDB(t)
	if err := DeleteCard(context.Background(), db, "someWrongId123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCardsStats(t *testing.T) {
	db := newTestDB(t)

	cards, likes, lastCard, lastLike, err := CardsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("CardsStats empty: %v", err)
	}
	if cards != 0 || likes != 0 || lastCard != nil || lastLike != nil {
		t.Fatalf("empty stats: %d %d %v %v", cards, likes, lastCard, lastLike)
	}

	owner := seedUser(t, db, "o1")
	c, err := CreateCard(context.Background(), db, owner.ID, "Lake", "https://e.com/lake.png")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := AddLike(context.Background(), db, c.ID, owner.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}

	cards, likes, lastCard, lastLike, err = CardsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("CardsStats: %v", err)
	}
	if cards != 1 || likes != 1 {
		t.Fatalf("counts: %d %d", cards, likes)
	}
	if lastCard == nil || lastLike == nil {
		t.Fatalf("timestamps must be set: %v %v", lastCard, lastLike)
	}
}
