package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memberhub/registration-system/internal/api/handler"
	"github.com/memberhub/registration-system/internal/api/middleware"
	"github.com/memberhub/registration-system/internal/core/ports"
	"github.com/memberhub/registration-system/internal/core/service"
	"github.com/memberhub/registration-system/internal/infrastructure/config"
	mongostore "github.com/memberhub/registration-system/internal/infrastructure/db/mongo"
	redisstore "github.com/memberhub/registration-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registration"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	confirmations := redisstore.NewConfirmationStore(rdb)
	registrationService := service.NewRegistrationService(userRepo, mailer, confirmations, service.Config{
		JWTSecret:               cfg.JWTSecret,
		BaseURL:                 cfg.BaseURL,
		MinimumAge:              cfg.MinimumAge,
		RequireConfirmedAccount: cfg.RequireConfirmedAccount,
		ConfirmationTTL:         cfg.ConfirmationTTL,
		SessionTTL:              cfg.SessionTTL,
	}, log)

	registerHandler := handler.NewRegisterHandler(registrationService, cfg.JWTSecret, cfg.MinimumAge, cfg.ExternalAuthSchemes)
	confirmHandler := handler.NewConfirmHandler(registrationService)
	acknowledgmentHandler := handler.NewAcknowledgmentHandler()
	authHandler := handler.NewAuthHandler(registrationService)
	sessionMiddleware := middleware.Session(cfg.JWTSecret)

	// --- Registration flow ---
	e.GET("/account/register", registerHandler.Form)
	e.POST("/account/register", registerHandler.Submit)
	e.GET("/account/register-confirmation", registerHandler.Pending)
	e.GET("/account/confirm-email", confirmHandler.Confirm)
	e.GET("/acknowledgment", acknowledgmentHandler.Get)
	e.POST("/acknowledgment", acknowledgmentHandler.Post)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Signed-in surface ---
	me := e.Group("/me", sessionMiddleware)
	me.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"user_id": c.Get("user_id"),
			"email":   c.Get("email"),
			"name":    c.Get("name"),
		})
	})

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
