package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/todo-system/internal/api/handler"
	"github.com/taskhive/todo-system/internal/api/middleware"
	"github.com/taskhive/todo-system/internal/core/service"
	mongodb "github.com/taskhive/todo-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/todo-system/internal/infrastructure/db/redis"
)

// Options carries everything the router needs to wire the application.
// Redis may be nil; the stats cache is then disabled.
type Options struct {
	DB         *mongo.Database
	Redis      *goredis.Client
	JWTSecret  string
	CORSOrigin string
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))
	if opts.CORSOrigin != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{opts.CORSOrigin},
			AllowCredentials: true,
		}))
	}

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(opts.DB)
	authService := service.NewAuthService(authRepo, opts.JWTSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	var statsCache service.StatsCache
	if opts.Redis != nil {
		statsCache = redisdb.NewStatsCache(opts.Redis)
	}
	todoRepo := mongodb.NewTodoRepository(opts.DB)
	todoService := service.NewTodoService(todoRepo, statsCache, opts.Logger)
	todoHandler := handler.NewTodoHandler(todoService)

	authRequired := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Todo routes (owner-scoped, token required) ---
	todos := e.Group("/api/todos", authRequired)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.GET("/stats", todoHandler.Stats)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.DB, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
