package repositories

import (
	"context"
	"fmt"
	"time"

	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache cache.Cache
	log   *logger.Logger
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, c cache.Cache, log *logger.Logger) UserRepository {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &userRepository{
		db:    db,
		cache: c,
		log:   log.WithComponent(logger.ComponentCache),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err, ErrUserNotFound))
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	key := cache.UserKey(id)

	var cached cachedUser
	if found, err := r.cache.Get(ctx, key, &cached); err != nil {
		r.log.WarnContext(ctx, "user cache read failed", logger.FieldUserID, id, logger.FieldError, err)
	} else if found {
		return cached.toModel(), nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.Set(ctx, key, newCachedUser(&user)); err != nil {
		r.log.WarnContext(ctx, "user cache write failed", logger.FieldUserID, id, logger.FieldError, err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *userRepository) getBy(ctx context.Context, cond string, value string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(cond, value).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", translateError(result.Error, ErrUserNotFound))
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	r.invalidate(ctx, user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(ctx context.Context, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment token version: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *userRepository) invalidate(ctx context.Context, userID uint) {
	if err := r.cache.Delete(ctx, cache.UserKey(userID)); err != nil {
		r.log.WarnContext(ctx, "user cache invalidation failed", logger.FieldUserID, userID, logger.FieldError, err)
	}
}

// cachedUser is the cache form of models.User. The password hash never
// leaves the database.
type cachedUser struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Username     *string   `json:"username"`
	Email        string    `json:"email"`
	TokenVersion int       `json:"token_version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newCachedUser(u *models.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c cachedUser) toModel() *models.User {
	return &models.User{
		ID:           c.ID,
		Name:         c.Name,
		Username:     c.Username,
		Email:        c.Email,
		TokenVersion: c.TokenVersion,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
