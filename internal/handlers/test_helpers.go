package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/storefront/internal/models"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithCorrelationID attaches a correlation id to the request context
func WithCorrelationID(req *http.Request, id string) *http.Request {
	return req.WithContext(pkghttp.WithCorrelationID(req.Context(), id))
}

// NewTestLogger returns a logger that discards output
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error envelope and returns it
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) pkghttp.ErrorResponse {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedCode, resp.Error.Code, "Error code mismatch")
	assert.NotEmpty(t, resp.Error.Message, "Error message should not be empty")
	return resp
}

// MockUserService implements UserService for testing
type MockUserService struct {
	CreateUserFunc func(ctx context.Context, input models.CreateUserInput) (*models.User, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	if m.CreateUserFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateUserFunc(ctx, input)
}

// MockProductService implements ProductService for testing
type MockProductService struct {
	ListAvailableProductsFunc func(ctx context.Context, q models.ProductQuery) (*models.Page[models.Product], error)
}

func (m *MockProductService) ListAvailableProducts(ctx context.Context, q models.ProductQuery) (*models.Page[models.Product], error) {
	if m.ListAvailableProductsFunc == nil {
		return models.NewPage[models.Product](nil, 1, models.DefaultPageSize, 0), nil
	}
	return m.ListAvailableProductsFunc(ctx, q)
}

// MockCategoryService implements CategoryService for testing
type MockCategoryService struct {
	ListCategoriesFunc func(ctx context.Context) ([]models.Category, error)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.ListCategoriesFunc == nil {
		return []models.Category{}, nil
	}
	return m.ListCategoriesFunc(ctx)
}
