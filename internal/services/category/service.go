// Package category manages the income and expense categories a user files
// transactions under.
package category

import (
	"context"
	"errors"
	"strings"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/validation"
)

type Input struct {
	Name string                 `json:"name"`
	Type models.TransactionType `json:"type"`
	Icon *string                `json:"icon"`
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Icon != nil {
		icon := strings.TrimSpace(*in.Icon)
		if icon == "" {
			in.Icon = nil
		} else {
			in.Icon = &icon
		}
	}

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, validation.MaxNameLength)
	v.TransactionType("type", in.Type)
	if in.Icon != nil {
		v.MaxLength("icon", *in.Icon, validation.MaxIconLength)
	}
	return v.Err()
}

type Service interface {
	Create(ctx context.Context, userID uint, in Input) (*models.UserCategory, error)
	Get(ctx context.Context, userID, id uint) (*models.UserCategory, error)
	// List returns the user's categories, only those of txType when it is a
	// known type.
	List(ctx context.Context, userID uint, txType *models.TransactionType) ([]models.UserCategory, error)
	Update(ctx context.Context, userID, id uint, in Input) (*models.UserCategory, error)
	Delete(ctx context.Context, userID, id uint) error
}

type service struct {
	categories   repositories.CategoryRepository
	transactions repositories.TransactionRepository
	log          *logger.Logger
}

func NewService(ledger repositories.Ledger, log *logger.Logger) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		categories:   ledger.Categories(),
		transactions: ledger.Transactions(),
		log:          log.WithComponent(logger.ComponentCategory),
	}
}

func (s *service) Create(ctx context.Context, userID uint, in Input) (*models.UserCategory, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	c := &models.UserCategory{UserID: userID, Name: in.Name, Type: in.Type, Icon: in.Icon}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, s.fail(ctx, logger.OpCreate, "Failed to create category", err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, userID, id uint) (*models.UserCategory, error) {
	c, err := s.categories.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, s.fail(ctx, logger.OpRead, "Failed to load category", err)
	}
	return c, nil
}

func (s *service) List(ctx context.Context, userID uint, txType *models.TransactionType) ([]models.UserCategory, error) {
	if txType != nil && !txType.Valid() {
		txType = nil
	}
	categories, err := s.categories.ListByUser(ctx, userID, txType)
	if err != nil {
		return nil, s.fail(ctx, logger.OpList, "Failed to load categories", err)
	}
	if categories == nil {
		categories = []models.UserCategory{}
	}
	return categories, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, in Input) (*models.UserCategory, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Type = in.Type
	c.Icon = in.Icon
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, s.fail(ctx, logger.OpUpdate, "Failed to update category", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	n, err := s.transactions.CountByCategory(ctx, id)
	if err != nil {
		return s.fail(ctx, logger.OpDelete, "Failed to delete category", err)
	}
	if n > 0 {
		return apperrors.ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return s.fail(ctx, logger.OpDelete, "Failed to delete category", err)
	}
	return nil
}

func (s *service) fail(ctx context.Context, op, message string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrCategoryNotFound
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return apperrors.ErrCategoryInUse
	}
	s.log.ErrorContext(ctx, "category operation failed",
		logger.FieldOperation, op,
		logger.FieldError, err)
	return apperrors.Internal(message, err)
}
