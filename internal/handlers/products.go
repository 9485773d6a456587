package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BradenHooton/storefront/internal/models"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/google/uuid"
)

// ProductService defines the interface for catalog listing
type ProductService interface {
	ListAvailableProducts(ctx context.Context, q models.ProductQuery) (*models.Page[models.Product], error)
}

// ProductHandler handles product listing requests
type ProductHandler struct {
	service ProductService
	logger  *slog.Logger
}

func NewProductHandler(service ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// MoneyResponse carries the amount as an exact JSON number literal.
type MoneyResponse struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the summary view of a product. Absent values are
// emitted as null.
type ProductResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	DescriptionSummary *string           `json:"descriptionSummary"`
	ImageURL           *string           `json:"imageUrl"`
	Price              *MoneyResponse    `json:"price"`
	IsAvailable        bool              `json:"isAvailable"`
	Category           *CategoryResponse `json:"category"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
}

func productModelToResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		DescriptionSummary: p.DescriptionSummary,
		ImageURL:           p.ImageURL,
		IsAvailable:        p.IsAvailable,
	}
	if p.Price != nil {
		resp.Price = &MoneyResponse{
			Amount:   json.Number(p.Price.Amount.String()),
			Currency: p.Price.Currency,
		}
	}
	if p.Category != nil {
		resp.Category = &CategoryResponse{ID: p.Category.ID, Name: p.Category.Name}
	}
	return resp
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, violations := parseProductQuery(r)
	if len(violations) > 0 {
		writeServiceError(w, r, h.logger, &models.ValidationError{Violations: violations})
		return
	}

	page, err := h.service.ListAvailableProducts(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, productModelToResponse(p))
	}

	pkghttp.WriteJSON(w, http.StatusOK, ProductListResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// parseProductQuery reads the listing parameters. Values that cannot be
// parsed are reported; out-of-range numbers are left for Normalize.
func parseProductQuery(r *http.Request) (models.ProductQuery, []models.FieldViolation) {
	values := r.URL.Query()
	var q models.ProductQuery
	var violations []models.FieldViolation

	if term := values.Get("q"); term != "" {
		q.Term = &term
	}

	if raw := values.Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			violations = append(violations, models.FieldViolation{
				Field: "categoryId", Rule: "uuid", Message: "categoryId must be a valid UUID",
			})
		} else {
			s := id.String()
			q.CategoryID = &s
		}
	}

	sort, err := models.ParseProductSort(values.Get("sort"))
	if err != nil {
		violations = append(violations, models.FieldViolation{
			Field: "sort", Rule: "oneof", Message: "sort must be one of: name_asc, price_asc",
		})
	}
	q.Sort = sort

	var ok bool
	if q.Page, ok = parseIntParam(values.Get("page")); !ok {
		violations = append(violations, models.FieldViolation{
			Field: "page", Rule: "integer", Message: "page must be an integer",
		})
	}
	if q.PageSize, ok = parseIntParam(values.Get("pageSize")); !ok {
		violations = append(violations, models.FieldViolation{
			Field: "pageSize", Rule: "integer", Message: "pageSize must be an integer",
		})
	}

	return q, violations
}

// parseIntParam parses a 32-bit integer. An empty value yields 0, which
// Normalize replaces with the default.
func parseIntParam(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
