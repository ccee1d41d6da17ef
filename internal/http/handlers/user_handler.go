// User HTTP handlers.
//
// This file declares the service contracts consumed by the HTTP layer, the
// Handlers aggregate, and the endpoints for user resources:
//   - POST /users      (create)
//   - GET  /users      (list)
//   - GET  /users/:id  (fetch one)
//
// Handlers are transport-thin: they decode the body, call a service, and
// write the success envelope. Field validation lives in the services (backed
// by the declarative schemas), so a handler never inspects payload values;
// DTO fields are pointers precisely so the schemas can tell an omitted field
// from an empty one.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/http/middleware"
	"github.com/pdanilin/go-mesto-backend/internal/services"
)

// UserService defines the user operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the context.
type UserService interface {
	// Create registers a new user, applying profile defaults.
	Create(ctx context.Context, in services.CreateUserInput) (*domain.User, error)
	// Get fetches one user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)
	// List returns all users in creation order.
	List(ctx context.Context) ([]domain.User, error)
}

// CardService defines the card operations consumed by HTTP handlers.
type CardService interface {
	// Create inserts a card owned by the caller.
	Create(ctx context.Context, ownerID string, in services.CreateCardInput) (*domain.Card, error)
	// Get fetches one card with its likes.
	Get(ctx context.Context, id string) (*domain.Card, error)
	// List returns all cards with likes in creation order.
	List(ctx context.Context) ([]domain.Card, error)
	// Delete removes a card, subject to the ownership policy.
	Delete(ctx context.Context, callerID, cardID string) error
	// SetLike idempotently adds the caller's like and returns the card.
	SetLike(ctx context.Context, callerID, cardID string) (*domain.Card, error)
	// RemoveLike idempotently removes the caller's like and returns the card.
	RemoveLike(ctx context.Context, callerID, cardID string) (*domain.Card, error)
}

// AuthService defines registration and login as consumed by HTTP handlers.
type AuthService interface {
	// Register creates an account.
	Register(ctx context.Context, in services.CreateUserInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, in services.LoginInput) (string, error)
}

// Handlers groups the HTTP endpoints for users, cards, and authentication.
type Handlers struct {
	userSvc UserService
	cardSvc CardService
	authSvc AuthService
}

// New constructs a Handlers bound to the given services.
func New(userSvc UserService, cardSvc CardService, authSvc AuthService) *Handlers {
	return &Handlers{userSvc: userSvc, cardSvc: cardSvc, authSvc: authSvc}
}

// CreateUserRequest is the JSON payload for creating a user. Only email and
// password are required; the profile fields fall back to defaults.
type CreateUserRequest struct {
	Name     *string `json:"name" example:"Marie Curie"`
	About    *string `json:"about" example:"Physicist"`
	Avatar   *string `json:"avatar" example:"https://example.com/avatar.png"`
	Email    *string `json:"email" example:"marie@example.com"`
	Password *string `json:"password" example:"s3cr3t-pass"`
}

func (r CreateUserRequest) input() services.CreateUserInput {
	return services.CreateUserInput{
		Name:     r.Name,
		About:    r.About,
		Avatar:   r.Avatar,
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a new user
// @Description Creates a user. Omitted profile fields receive defaults; the email must be unused.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateUserRequest  true  "Create user payload"
//
// @Success     201  {object}  handlers.SuccessResponse{data=domain.User}
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.BadRequest("invalid JSON body"))
		return
	}
	u, err := h.userSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.User}
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, users)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch one user
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "User ID"
//
// @Success     200  {object}  handlers.SuccessResponse{data=domain.User}
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, u)
}

// callerID returns the authenticated caller's ID set by the auth gate.
func callerID(c *gin.Context) string { return middleware.UserID(c) }
