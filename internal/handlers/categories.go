package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/storefront/internal/models"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryHandler serves the category list
type CategoryHandler struct {
	service CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(service CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, logger: logger}
}

// ListCategories handles GET /categories. The body is a bare array ordered
// by name.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}
