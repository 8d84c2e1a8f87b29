package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradelab/code-grading-api/internal/api/handler"
	"github.com/gradelab/code-grading-api/internal/api/middleware"
	"github.com/gradelab/code-grading-api/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed once in main
// and passed explicitly — no ambient global state.
type Dependencies struct {
	DB          *mongo.Database
	Redis       *redis.Client // nil when the grade cache is disabled
	JWTSecret   string
	AuthService ports.AuthService
	Grading     ports.GradingService
	Uploads     handler.UploadStore
	Reports     ports.ReportStore
	StaticDir   string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("grader"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	uploadHandler := handler.NewUploadHandler(deps.Uploads, deps.Grading)
	reportHandler := handler.NewReportHandler(deps.Reports)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Landing page ---
	if deps.StaticDir != "" {
		e.File("/", deps.StaticDir+"/index.html")
		e.Static("/static", deps.StaticDir)
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Grading routes (bearer token required) ---
	e.POST("/upload", uploadHandler.Upload, authMiddleware)
	e.GET("/reports", reportHandler.List, authMiddleware)
	e.GET("/reports/:id", reportHandler.Get, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
