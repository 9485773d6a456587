package services

import (
	"context"
	"time"

	"github.com/BradenHooton/storefront/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	CreateFunc        func(ctx context.Context, user *models.User) (*models.User, error)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

// MockPasswordHasher implements PasswordHasher for testing
type MockPasswordHasher struct {
	HashPasswordFunc func(password string) (string, error)
}

func (m *MockPasswordHasher) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed:" + password, nil
}

// MockTransactor runs fn directly and records the outcome.
type MockTransactor struct {
	Calls      int
	Committed  int
	RolledBack int
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

// MockProductRepository implements ProductRepository for testing
type MockProductRepository struct {
	ListAvailableFunc func(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
}

func (m *MockProductRepository) ListAvailable(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	if m.ListAvailableFunc != nil {
		return m.ListAvailableFunc(ctx, q)
	}
	return []models.Product{}, 0, nil
}

// MockCategoryRepository implements CategoryRepository for testing
type MockCategoryRepository struct {
	ListByNameFunc func(ctx context.Context) ([]models.Category, error)
}

func (m *MockCategoryRepository) ListByName(ctx context.Context) ([]models.Category, error) {
	if m.ListByNameFunc != nil {
		return m.ListByNameFunc(ctx)
	}
	return []models.Category{}, nil
}

// NewTestUser creates a stored user for testing
func NewTestUser(id, email, name string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: "$2a$10$hash",
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
