package repositories

import (
	"context"
	"errors"

	"catatuang/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	// GetByID is served from the cache when possible; it runs on every
	// authenticated request.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Update persists name, username and email.
	Update(ctx context.Context, user *models.User) error
	// IncrementTokenVersion revokes every token issued so far.
	IncrementTokenVersion(ctx context.Context, userID uint) error
}
