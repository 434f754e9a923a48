package handler

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"recipehub/internal/auth"
	"recipehub/internal/http/middleware"
	"recipehub/internal/repository"
	"recipehub/internal/service"
)

// Deps bundles the dependencies the route table needs.
type Deps struct {
	Mongo    *mongo.Client
	Recipes  service.RecipeService
	Users    repository.UserRepository
	Provider *auth.Provider
	Sessions *auth.SessionManager
	Registry *prometheus.Registry
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, d Deps) {
	// Health endpoints
	app.Get("/health", HealthCheck(d.Mongo))
	app.Get("/healthz", LivenessProbe())

	// Prometheus metrics
	if d.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// OAuth handshake and session endpoints
	authGroup := app.Group("/auth")
	if d.Provider != nil {
		authGroup.Get("/"+d.Provider.Name()+"/start", middleware.AllowMethods(fiber.MethodGet), StartOAuth(d.Provider))
		authGroup.Get("/"+d.Provider.Name()+"/callback", middleware.AllowMethods(fiber.MethodGet), OAuthCallback(d.Provider, d.Users, d.Sessions))
	}
	authGroup.Get("/session", middleware.AllowMethods(fiber.MethodGet), GetSession(d.Sessions))
	authGroup.Post("/signout", middleware.AllowMethods(fiber.MethodPost), SignOut(d.Sessions))

	// Recipe API: session-guarded with per-route method allow-lists
	api := app.Group("/api", middleware.Session(d.Sessions))
	api.Use("/recipes", middleware.AllowMethods(fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete))
	api.Get("/recipes", ListRecipes(d.Recipes))
	api.Post("/recipes", CreateRecipe(d.Recipes))
	api.Get("/recipes/:id", GetRecipe(d.Recipes))
	api.Delete("/recipes/:id", DeleteRecipe(d.Recipes))
}
