package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/storefront/internal/models"
)

type CategoryRepository interface {
	ListByName(ctx context.Context) ([]models.Category, error)
}

type CategoryService struct {
	repo   CategoryRepository
	logger *slog.Logger
}

func NewCategoryService(repo CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// ListCategories returns all categories sorted by name; empty, never nil.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListByName(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	if categories == nil {
		categories = make([]models.Category, 0)
	}
	return categories, nil
}
