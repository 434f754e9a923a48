package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"recipehub/docs"
	"recipehub/internal/auth"
	"recipehub/internal/config"
	"recipehub/internal/database"
	handlers "recipehub/internal/http/handler"
	"recipehub/internal/http/middleware"
	"recipehub/internal/otel"
	"recipehub/internal/repository/mongodb"
	"recipehub/internal/service"
	"recipehub/internal/storage"
	"recipehub/internal/upload"
)

// @title RecipeHub API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdown, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdown(context.Background())

	// Initialize MongoDB connection
	mongoClient, db, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// OAuth provider and session manager
	provider, err := auth.NewGoogle(cfg.OAuth)
	if err != nil {
		log.Fatalf("failed to configure oauth provider: %v", err)
	}
	sessions, err := auth.NewSessionManager(cfg.Session)
	if err != nil {
		log.Fatalf("failed to configure sessions: %v", err)
	}

	// Initialize repositories, uploader, and services
	recipeRepo := mongodb.NewRecipeMongo(db)
	userRepo := mongodb.NewUserMongo(db)
	uploader := upload.New(objStore, cfg.Upload)
	recipeSvc := service.NewRecipeService(recipeRepo, objStore, uploader)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Trace server spans per request
	app.Use(otelfiber.Middleware())

	// Request counters exposed under /metrics
	registry := prometheus.NewRegistry()
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())

	// Register HTTP routes with injected dependencies
	handlers.RegisterRoutes(app, handlers.Deps{
		Mongo:    mongoClient,
		Recipes:  recipeSvc,
		Users:    userRepo,
		Provider: provider,
		Sessions: sessions,
		Registry: registry,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
