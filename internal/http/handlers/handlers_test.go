package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/domain"
	"github.com/pdanilin/go-mesto-backend/internal/http/middleware"
	"github.com/pdanilin/go-mesto-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

//
// Service stubs
//

type stubUserSvc struct {
	user    *domain.User
	users   []domain.User
	err     error
	gotID   string
	gotName *string
}

func (s *stubUserSvc) Create(_ context.Context, in services.CreateUserInput) (*domain.User, error) {
	s.gotName = in.Name
	return s.user, s.err
}
func (s *stubUserSvc) Get(_ context.Context, id string) (*domain.User, error) {
	s.gotID = id
	return s.user, s.err
}
func (s *stubUserSvc) List(context.Context) ([]domain.User, error) { return s.users, s.err }

type stubCardSvc struct {
	card      *domain.Card
	cards     []domain.Card
	err       error
	gotCaller string
	gotCard   string
}

func (s *stubCardSvc) Create(_ context.Context, ownerID string, _ services.CreateCardInput) (*domain.Card, error) {
	s.gotCaller = ownerID
	return s.card, s.err
}
func (s *stubCardSvc) Get(_ context.Context, id string) (*domain.Card, error) {
	s.gotCard = id
	return s.card, s.err
}
func (s *stubCardSvc) List(context.Context) ([]domain.Card, error) { return s.cards, s.err }
func (s *stubCardSvc) Delete(_ context.Context, callerID, cardID string) error {
	s.gotCaller, s.gotCard = callerID, cardID
	return s.err
}
func (s *stubCardSvc) SetLike(_ context.Context, callerID, cardID string) (*domain.Card, error) {
	s.gotCaller, s.gotCard = callerID, cardID
	return s.card, s.err
}
func (s *stubCardSvc) RemoveLike(_ context.Context, callerID, cardID string) (*domain.Card, error) {
	s.gotCaller, s.gotCard = callerID, cardID
	return s.card, s.err
}

type stubAuthSvc struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthSvc) Register(_ context.Context, _ services.CreateUserInput) (*domain.User, error) {
	return s.user, s.err
}
func (s *stubAuthSvc) Login(_ context.Context, _ services.LoginInput) (string, error) {
	return s.token, s.err
}

//
// Harness
//

func newRouter(h *Handlers, caller string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	if caller != "" {
		r.Use(func(c *gin.Context) { c.Set("userID", caller); c.Next() })
	}
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/users", h.CreateUser)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/cards", h.CreateCard)
	r.GET("/cards", h.ListCards)
	r.GET("/cards/:id", h.GetCard)
	r.DELETE("/cards/:id", h.DeleteCard)
	r.PUT("/cards/:id/likes", h.LikeCard)
	r.DELETE("/cards/:id/likes", h.UnlikeCard)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return e
}

//
// Users
//

func TestCreateUser_Success(t *testing.T) {
	svc := &stubUserSvc{user: &domain.User{ID: "u1", Name: "N", Email: "e@e.com"}}
	r := newRouter(New(svc, &stubCardSvc{}, &stubAuthSvc{}), "caller")

	w := do(r, http.MethodPost, "/users", `{"name":"N","email":"e@e.com","password":"p"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	e := decode(t, w)
	if e.Status != "success" {
		t.Fatalf("envelope = %+v", e)
	}
	if svc.gotName == nil || *svc.gotName != "N" {
		t.Fatalf("name not passed through: %v", svc.gotName)
	}
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	r := newRouter(New(&stubUserSvc{}, &stubCardSvc{}, &stubAuthSvc{}), "caller")

	w := do(r, http.MethodPost, "/users", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode(t, w); e.Status != "fail" || e.Message != "invalid JSON body" {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestCreateUser_ServiceErrorPassesThrough(t *testing.T) {
	svc := &stubUserSvc{err: apperr.Conflict("user with email e@e.com already exists")}
	r := newRouter(New(svc, &stubCardSvc{}, &stubAuthSvc{}), "caller")

	w := do(r, http.MethodPost, "/users", `{"email":"e@e.com","password":"p"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode(t, w); e.Message != "user with email e@e.com already exists" {
		t.Fatalf("envelope = %+v", e)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &stubUserSvc{err: apperr.NotFound("user not found")}
	r := newRouter(New(svc, &stubCardSvc{}, &stubAuthSvc{}), "caller")

	w := do(r, http.MethodGet, "/users/u404", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.gotID != "u404" {
		t.Fatalf("id not passed: %q", svc.gotID)
	}
}

func TestListUsers_EmptyArray(t *testing.T) {
	r := newRouter(New(&stubUserSvc{users: []domain.User{}}, &stubCardSvc{}, &stubAuthSvc{}), "caller")

	w := do(r, http.MethodGet, "/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode(t, w); string(e.Data) != "[]" {
		t.Fatalf("data = %s, want []", e.Data)
	}
}

//
// Cards
//

func TestCreateCard_UsesCallerAsOwner(t *testing.T) {
	svc := &stubCardSvc{card: &domain.Card{ID: "c1", OwnerID: "caller-9"}}
	r := newRouter(New(&stubUserSvc{}, svc, &stubAuthSvc{}), "caller-9")

	w := do(r, http.MethodPost, "/cards", `{"name":"Lake","link":"https://e.com/x"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if svc.gotCaller != "caller-9" {
		t.Fatalf("owner = %q", svc.gotCaller)
	}
}

func TestDeleteCard_EmptyDataObject(t *testing.T) {
	svc := &stubCardSvc{}
	r := newRouter(New(&stubUserSvc{}, svc, &stubAuthSvc{}), "caller-9")

	w := do(r, http.MethodDelete, "/cards/c1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode(t, w); string(e.Data) != "{}" {
		t.Fatalf("data = %s, want {}", e.Data)
	}
	if svc.gotCaller != "caller-9" || svc.gotCard != "c1" {
		t.Fatalf("args = %q %q", svc.gotCaller, svc.gotCard)
	}
}

func TestDeleteCard_ForbiddenPassesThrough(t *testing.T) {
	svc := &stubCardSvc{err: apperr.Forbidden("cannot delete another user's card")}
	r := newRouter(New(&stubUserSvc{}, svc, &stubAuthSvc{}), "caller-9")

	w := do(r, http.MethodDelete, "/cards/c1", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLikeUnlike_ReturnUpdatedCard(t *testing.T) {
	card := &domain.Card{ID: "c1", Likes: []string{"caller-9"}}
	svc := &stubCardSvc{card: card}
	r := newRouter(New(&stubUserSvc{}, svc, &stubAuthSvc{}), "caller-9")

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w := do(r, method, "/cards/c1/likes", "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", method, w.Code)
		}
		var got domain.Card
		if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
			t.Fatalf("%s: decode card: %v", method, err)
		}
		if got.ID != "c1" {
			t.Fatalf("%s: card = %+v", method, got)
		}
		if svc.gotCaller != "caller-9" || svc.gotCard != "c1" {
			t.Fatalf("%s: args = %q %q", method, svc.gotCaller, svc.gotCard)
		}
	}
}

//
// Auth
//

func TestRegister_Returns201User(t *testing.T) {
	svc := &stubAuthSvc{user: &domain.User{ID: "u1", Email: "e@e.com"}}
	r := newRouter(New(&stubUserSvc{}, &stubCardSvc{}, svc), "")

	w := do(r, http.MethodPost, "/register", `{"email":"e@e.com","password":"p"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var got domain.User
	if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("user = %+v", got)
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &stubAuthSvc{token: "tok-123"}
	r := newRouter(New(&stubUserSvc{}, &stubCardSvc{}, svc), "")

	w := do(r, http.MethodPost, "/login", `{"email":"e@e.com","password":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got TokenResponse
	if err := json.Unmarshal(decode(t, w).Data, &got); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if got.Token != "tok-123" {
		t.Fatalf("token = %q", got.Token)
	}
}

func TestLogin_UnauthorizedPassesThrough(t *testing.T) {
	svc := &stubAuthSvc{err: apperr.Unauthorized("incorrect email or password")}
	r := newRouter(New(&stubUserSvc{}, &stubCardSvc{}, svc), "")

	w := do(r, http.MethodPost, "/login", `{"email":"e@e.com","password":"bad"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode(t, w); e.Message != "incorrect email or password" {
		t.Fatalf("envelope = %+v", e)
	}
}
