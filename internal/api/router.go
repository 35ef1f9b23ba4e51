package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dilahazalbilgin/VerifID/internal/api/handler"
	"github.com/dilahazalbilgin/VerifID/internal/api/middleware"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
	healthhandlers "github.com/dilahazalbilgin/VerifID/internal/infrastructure/http/handlers"
)

// Deps bundles everything the router needs.
type Deps struct {
	UserService         ports.UserService
	VerificationService ports.VerificationService
	Mongo               *mongo.Database
	Redis               *redis.Client
	JWTSecret           string
	Production          bool
	Log                 zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("verifid"))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(deps.UserService)
	verificationHandler := handler.NewVerificationHandler(deps.VerificationService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.PUT("/profile", userHandler.UpdateProfile, authMiddleware)

	// --- Verification routes ---
	verification := e.Group("/api/verification")
	verification.POST("/generate-request-id", verificationHandler.Generate, authMiddleware)
	verification.GET("/my-request-id", verificationHandler.MyRequestID, authMiddleware)
	verification.DELETE("/revoke-request-id", verificationHandler.Revoke, authMiddleware)
	// Public route for third-party verification (no authentication). The
	// bare paths route a missing token to the handler so integrators get a
	// 400 rather than the router's 404.
	verification.GET("/verify/:requestId", verificationHandler.Lookup)
	verification.GET("/verify", verificationHandler.Lookup)
	verification.GET("/verify/", verificationHandler.Lookup)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
