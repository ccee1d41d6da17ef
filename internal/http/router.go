// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, the uniform error
// envelope, metrics, CORS, security headers, rate limiting, and the
// authentication gate.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - One terminal error renderer; nothing else writes error bodies
//   - The auth gate runs at engine level, so unauthenticated requests are
//     refused before route matching and unknown paths answer 401, not 404
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/pdanilin/go-mesto-backend/docs" // generated OpenAPI spec
	"github.com/pdanilin/go-mesto-backend/internal/apperr"
	"github.com/pdanilin/go-mesto-backend/internal/auth"
	"github.com/pdanilin/go-mesto-backend/internal/config"
	"github.com/pdanilin/go-mesto-backend/internal/http/handlers"
	"github.com/pdanilin/go-mesto-backend/internal/http/middleware"
	"github.com/pdanilin/go-mesto-backend/internal/messages"
	"github.com/pdanilin/go-mesto-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Body size limiter
//  5. Metrics
//  6. CORS, gzip, security headers
//  7. ErrorHandler: terminal renderer of the fail envelope. It must sit
//     inside gzip and Metrics, so its write lands in the compressed stream
//     and the recorded status is the one the client sees, and outside
//     everything that aborts with an error (gate, limiter, handlers)
//  8. Recovery: panics become redacted 500s through the error handler
//  9. Auth gate (engine-level, so it also covers unmatched routes)
//  10. Rate limiter, behind the gate so buckets key on the user when
//     authenticated and on the client IP otherwise
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = false

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	base := cfg.APIBasePath

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 5) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 6) CORS (allow all when no origins configured), gzip, security headers
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 7) Terminal error renderer, writing inside the gzip stream
	r.Use(middleware.ErrorHandler())

	// 8) Panic recovery feeding the error renderer
	r.Use(middleware.Recovery())

	// 9) Authentication gate. Everything is protected except the allowlist.
	public := map[string]struct{}{
		"/":                  {},
		"/health":            {},
		"/metrics":           {},
		joinPath(base, "/register"): {},
		joinPath(base, "/login"):    {},
	}
	r.Use(middleware.AuthGate(tokens, public, []string{"/swagger/"}))

	// 10) Token-bucket rate limiter keyed by user (set by the gate) or IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// Fallback. The gate has already vouched for the caller, so unknown
	// paths answer 404 here only for authenticated requests.
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound(messages.RouteNotFound))
	})

	// Liveness and root probe
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "It works!"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/config
	userSvc := &services.UserService{DB: db, Hasher: auth.NewPasswordHasher(cfg.BcryptCost)}
	cardSvc := &services.CardService{DB: db, OwnerOnlyDelete: cfg.CardDeleteOwnerOnly}
	authSvc := &services.AuthService{DB: db, Users: userSvc, Tokens: tokens}
	h := handlers.New(userSvc, cardSvc, authSvc)

	// Public API
	api := groupWithPrefix(r, base)
	{
		// Auth
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)

		// Cards and likes
		api.POST("/cards", h.CreateCard)
		api.GET("/cards", h.ListCards)
		api.GET("/cards/:id", h.GetCard)
		api.DELETE("/cards/:id", h.DeleteCard)
		api.PUT("/cards/:id/likes", h.LikeCard)
		api.DELETE("/cards/:id/likes", h.UnlikeCard)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; reads beyond the cap error downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// joinPath concatenates the base path and a route, collapsing the root base.
func joinPath(base, route string) string {
	if base == "" || base == "/" {
		return route
	}
	return base + route
}
