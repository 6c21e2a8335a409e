// Package wallettype manages the labels users group their wallets under,
// such as Bank or E-Wallet.
package wallettype

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
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = trimOptional(in.Icon)

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, validation.MaxNameLength)
	if in.Icon != nil {
		v.MaxLength("icon", *in.Icon, validation.MaxIconLength)
	}
	return v.Err()
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

type Service interface {
	Create(ctx context.Context, userID uint, in Input) (*models.UserWalletType, error)
	Get(ctx context.Context, userID, id uint) (*models.UserWalletType, error)
	List(ctx context.Context, userID uint) ([]models.UserWalletType, error)
	Update(ctx context.Context, userID, id uint, in Input) (*models.UserWalletType, error)
	// Delete detaches the type from every wallet that used it.
	Delete(ctx context.Context, userID, id uint) error
}

type service struct {
	repo repositories.WalletTypeRepository
	log  *logger.Logger
}

func NewService(repo repositories.WalletTypeRepository, log *logger.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{repo: repo, log: log.WithComponent(logger.ComponentWallet)}
}

func (s *service) Create(ctx context.Context, userID uint, in Input) (*models.UserWalletType, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	wt := &models.UserWalletType{UserID: userID, Name: in.Name, Icon: in.Icon}
	if err := s.repo.Create(ctx, wt); err != nil {
		return nil, s.fail(ctx, logger.OpCreate, "Failed to create wallet type", err)
	}
	return wt, nil
}

func (s *service) Get(ctx context.Context, userID, id uint) (*models.UserWalletType, error) {
	wt, err := s.repo.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, s.fail(ctx, logger.OpRead, "Failed to load wallet type", err)
	}
	return wt, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.UserWalletType, error) {
	types, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, logger.OpList, "Failed to load wallet types", err)
	}
	if types == nil {
		types = []models.UserWalletType{}
	}
	return types, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, in Input) (*models.UserWalletType, error) {
	wt, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	wt.Name = in.Name
	wt.Icon = in.Icon
	if err := s.repo.Update(ctx, wt); err != nil {
		return nil, s.fail(ctx, logger.OpUpdate, "Failed to update wallet type", err)
	}
	return s.Get(ctx, userID, id)
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.fail(ctx, logger.OpDelete, "Failed to delete wallet type", err)
	}
	return nil
}

func (s *service) fail(ctx context.Context, op, message string, err error) error {
	if errors.Is(err, repositories.ErrWalletTypeNotFound) {
		return apperrors.ErrWalletTypeNotFound
	}
	s.log.ErrorContext(ctx, "wallet type operation failed",
		logger.FieldOperation, op,
		logger.FieldError, err)
	return apperrors.Internal(message, err)
}
