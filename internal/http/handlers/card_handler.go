// Card HTTP handlers.
//
// This file exposes the endpoints for card resources and their likes:
//   - POST   /cards            (create)
//   - GET    /cards            (list, weak ETag support)
//   - GET    /cards/:id        (fetch one)
//   - DELETE /cards/:id        (delete, ownership policy)
//   - PUT    /cards/:id/likes  (like, idempotent)
//   - DELETE /cards/:id/likes  (unlike, idempotent)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/repo"
	"github.com/pdanilin/go-mesto-backend/internal/services"
)

// CreateCardRequest is the JSON payload for creating a card.
type CreateCardRequest struct {
	Name *string `json:"name" example:"Lake Karelia"`
	Link *string `json:"link" example:"https://example.com/lake.png"`
}

// CreateCard godoc
// @ID          createCard
// @Summary     Create a new card
// @Description Creates a card owned by the caller.
// @Tags        Cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateCardRequest  true  "Create card payload"
//
// @Success     201  {object}  handlers.SuccessResponse{data=domain.Card}
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /cards [post]
func (h *Handlers) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.BadRequest("invalid JSON body"))
		return
	}
	card, err := h.cardSvc.Create(c.Request.Context(), callerID(c), services.CreateCardInput{
		Name: req.Name,
		Link: req.Link,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, card)
}

// ListCards godoc
// @ID          listCards
// @Summary     List all cards
// @Description Returns every card with its likes. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Card}
// @Header      200  {string}  ETag  "Weak ETag for the current card set"
// @Success     304  {string}  string  "Not Modified"
// @Router      /cards [get]
func (h *Handlers) ListCards(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check, best effort: derived from counts and newest rows so any
	// card or like mutation changes it.
	if svc, okT := h.cardSvc.(*services.CardService); okT {
		cards, likes, lastCard, lastLike, err := repo.CardsStats(ctx, svc.DB)
		if err == nil {
			var ct, lt int64
			if lastCard != nil {
				ct = lastCard.UnixNano()
			}
			if lastLike != nil {
				lt = lastLike.UnixNano()
			}
			etag := fmt.Sprintf(`W/"cards:%d:%d:%d:%d"`, cards, likes, ct, lt)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	list, err := h.cardSvc.List(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}

// GetCard godoc
// @ID          getCard
// @Summary     Fetch one card
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Card ID"
//
// @Success     200  {object}  handlers.SuccessResponse{data=domain.Card}
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{id} [get]
func (h *Handlers) GetCard(c *gin.Context) {
	card, err := h.cardSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, card)
}

// DeleteCard godoc
// @ID          deleteCard
// @Summary     Delete a card
// @Description Deletes a card and its likes. Refused when the ownership policy is on and the caller is not the owner.
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Card ID"
//
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not the card owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{id} [delete]
func (h *Handlers) DeleteCard(c *gin.Context) {
	if err := h.cardSvc.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, struct{}{})
}

// LikeCard godoc
// @ID          likeCard
// @Summary     Like a card
// @Description Adds the caller to the card's likes. Liking an already-liked card is a no-op.
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Card ID"
//
// @Success     200  {object}  handlers.SuccessResponse{data=domain.Card}
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{id}/likes [put]
func (h *Handlers) LikeCard(c *gin.Context) {
	card, err := h.cardSvc.SetLike(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, card)
}

// UnlikeCard godoc
// @ID          unlikeCard
// @Summary     Remove a like from a card
// @Description Removes the caller from the card's likes. Removing an absent like is a no-op.
// @Tags        Cards
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Card ID"
//
// @Success     200  {object}  handlers.SuccessResponse{data=domain.Card}
// @Failure     404  {object}  handlers.ErrorResponse  "Card not found"
// @Router      /cards/{id}/likes [delete]
func (h *Handlers) UnlikeCard(c *gin.Context) {
	card, err := h.cardSvc.RemoveLike(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, card)
}
