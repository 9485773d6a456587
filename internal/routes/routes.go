package routes

import (
	"net/http"

	"github.com/BradenHooton/storefront/internal/handlers"
	"github.com/BradenHooton/storefront/internal/middleware"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/go-chi/chi/v5"
)

// APIPrefix is the mount point of the versioned public API.
const APIPrefix = "/api/v1"

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	Users      *handlers.UserHandler
	Health     *handlers.HealthHandler
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, h Handlers, registrationLimit middleware.RateLimitConfig) {
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteError(w, r, http.StatusNotFound, pkghttp.CodeNotFound, "Resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteError(w, r, http.StatusMethodNotAllowed, pkghttp.CodeMethodNotAllowed, "Method not allowed")
	})

	router.Get("/health", h.Health.Health)

	router.Route(APIPrefix, func(r chi.Router) {
		// Catalog, read-only and public
		r.Get("/products", h.Products.ListProducts)
		r.Get("/categories", h.Categories.ListCategories)

		// Registration is rate limited per client IP
		r.With(middleware.RateLimitByIP(registrationLimit)).Post("/users", h.Users.CreateUser)
	})
}
