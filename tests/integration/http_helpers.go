//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/BradenHooton/storefront/internal/config"
	"github.com/BradenHooton/storefront/internal/database"
	"github.com/BradenHooton/storefront/internal/handlers"
	middlewareCustom "github.com/BradenHooton/storefront/internal/middleware"
	"github.com/BradenHooton/storefront/internal/repositories"
	"github.com/BradenHooton/storefront/internal/routes"
	"github.com/BradenHooton/storefront/internal/services"
	pkgauth "github.com/BradenHooton/storefront/pkg/auth"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	pkglogger "github.com/BradenHooton/storefront/pkg/logger"
)

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server *httptest.Server
	DB     *database.DB
	Config *config.Config
}

// NewTestServer initializes a complete HTTP server backed by the real database
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(pkglogger.NewContextHandler(
		slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			RequestTimeout: 30 * time.Second,
		},
		Auth: config.AuthConfig{
			BcryptCost: config.MinBcryptCost,
		},
		RateLimit: config.RateLimitConfig{
			RegistrationsPerMinute: 1000,
		},
	}

	hasher, err := pkgauth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		panic(err)
	}

	userService := services.NewUserService(repositories.NewUserRepository(db), hasher, db, logger)
	productService := services.NewProductService(repositories.NewProductRepository(db), logger)
	categoryService := services.NewCategoryService(repositories.NewCategoryRepository(db), logger)

	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(middlewareCustom.Correlation)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(middlewareCustom.SecureLogger(logger, ipConfig))
	r.Use(middlewareCustom.Recoverer(logger))
	r.Use(middlewareCustom.Timeout(cfg.Server.RequestTimeout))

	routes.RegisterRoutes(r, routes.Handlers{
		Products:   handlers.NewProductHandler(productService, logger),
		Categories: handlers.NewCategoryHandler(categoryService, logger),
		Users:      handlers.NewUserHandler(userService, logger),
		Health:     handlers.NewHealthHandler(db),
	}, middlewareCustom.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimit.RegistrationsPerMinute,
		IPConfig:          ipConfig,
	})

	return &TestServer{
		Server: httptest.NewServer(r),
		DB:     db,
		Config: cfg,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}
