package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/storefront/internal/models"
	pkglogger "github.com/BradenHooton/storefront/pkg/logger"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// PasswordHasher produces salted one-way password hashes.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Transactor runs fn in a single store transaction carried by ctx.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserService handles user registration
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	tx     Transactor
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, hasher PasswordHasher, tx Transactor, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tx:     tx,
		logger: logger,
	}
}

// CreateUser registers a new ACTIVE account. Input must already be validated.
//
// The existence check gives the common duplicate case a clean error; the
// unique index on users.email decides races, and both paths return
// *models.EmailAlreadyExistsError.
func (s *UserService) CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	s.logger.InfoContext(ctx, "creating user", pkglogger.Email("email", input.Email))

	var created *models.User
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if exists {
			return &models.EmailAlreadyExistsError{Email: input.Email}
		}

		hash, err := s.hasher.HashPassword(input.Password)
		if err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, &models.User{
			Email:        input.Email,
			Name:         input.Name,
			PasswordHash: hash,
			Status:       models.UserStatusActive,
		})
		if errors.Is(err, models.ErrConflict) {
			return &models.EmailAlreadyExistsError{Email: input.Email}
		}
		return err
	})

	if err != nil {
		var dup *models.EmailAlreadyExistsError
		if errors.As(err, &dup) {
			s.logger.WarnContext(ctx, "email already registered", pkglogger.Email("email", dup.Email))
			return nil, dup
		}
		s.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.InfoContext(ctx, "user created", slog.String("user_id", created.ID))
	return created, nil
}
