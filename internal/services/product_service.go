package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/storefront/internal/models"
)

// ProductRepository reads the product catalog.
type ProductRepository interface {
	ListAvailable(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
}

// ProductService serves catalog listings.
type ProductService struct {
	repo   ProductRepository
	logger *slog.Logger
}

func NewProductService(repo ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// ListAvailableProducts normalizes q and returns the requested page of
// available products. Unavailable products are never returned. A page past
// the end yields no items but correct totals.
func (s *ProductService) ListAvailableProducts(ctx context.Context, q models.ProductQuery) (*models.Page[models.Product], error) {
	n := q.Normalize()

	items, total, err := s.repo.ListAvailable(ctx, n)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list products",
			slog.Int("page", n.Page),
			slog.Int("page_size", n.PageSize),
			slog.String("sort", string(n.Sort)),
			slog.Any("error", err),
		)
		return nil, models.ErrInternalServer
	}

	return models.NewPage(items, n.Page, n.PageSize, total), nil
}
