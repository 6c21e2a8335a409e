package wallet

import (
	"context"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/repositories/cache"
)

type Service interface {
	Create(ctx context.Context, userID uint, in CreateInput) (*models.Wallet, error)
	Get(ctx context.Context, userID, id uint) (*models.Wallet, error)
	List(ctx context.Context, userID uint) ([]models.Wallet, error)
	Update(ctx context.Context, userID, id uint, in UpdateInput) (*models.Wallet, error)
	Delete(ctx context.Context, userID, id uint) error
}

type service struct {
	ledger repositories.Ledger
	cache  cache.Cache
	log    *logger.Logger
}

// NewService creates a new wallet service
func NewService(ledger repositories.Ledger, c cache.Cache, log *logger.Logger) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		ledger: ledger,
		cache:  c,
		log:    log.WithComponent(logger.ComponentWallet),
	}
}

func (s *service) Create(ctx context.Context, userID uint, in CreateInput) (*models.Wallet, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := s.checkWalletType(ctx, userID, in.UserWalletTypeID); err != nil {
		return nil, err
	}

	w := &models.Wallet{
		UserID:           userID,
		UserWalletTypeID: in.UserWalletTypeID,
		Name:             in.Name,
		Balance:          in.openingBalance(),
	}
	if err := s.ledger.Wallets().Create(ctx, w); err != nil {
		s.log.ErrorContext(ctx, "create wallet failed",
			logger.FieldOperation, logger.OpCreate,
			logger.FieldUserID, userID,
			logger.FieldError, err)
		return nil, domainError(err, msgCreateFailed)
	}

	s.invalidateSummaries(ctx, userID)
	return s.Get(ctx, userID, w.ID)
}

func (s *service) Get(ctx context.Context, userID, id uint) (*models.Wallet, error) {
	w, err := s.ledger.Wallets().GetOwned(ctx, userID, id)
	if err != nil {
		return nil, domainError(err, msgLoadFailed)
	}
	return w, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]models.Wallet, error) {
	wallets, err := s.ledger.Wallets().ListByUser(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "list wallets failed",
			logger.FieldOperation, logger.OpList,
			logger.FieldUserID, userID,
			logger.FieldError, err)
		return nil, domainError(err, msgLoadFailed)
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}
	return wallets, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, in UpdateInput) (*models.Wallet, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := s.checkWalletType(ctx, userID, in.UserWalletTypeID); err != nil {
		return nil, err
	}

	w.Name = in.Name
	w.UserWalletTypeID = in.UserWalletTypeID
	if err := s.ledger.Wallets().Update(ctx, w); err != nil {
		s.log.ErrorContext(ctx, "update wallet failed",
			logger.FieldOperation, logger.OpUpdate,
			logger.FieldWalletID, id,
			logger.FieldError, err)
		return nil, domainError(err, msgUpdateFailed)
	}
	return s.Get(ctx, userID, id)
}

// Delete refuses wallets that still carry transactions.
func (s *service) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	n, err := s.ledger.Transactions().CountByWallet(ctx, id)
	if err != nil {
		return domainError(err, msgDeleteFailed)
	}
	if n > 0 {
		return apperrors.ErrWalletInUse
	}

	if err := s.ledger.Wallets().Delete(ctx, userID, id); err != nil {
		derr := domainError(err, msgDeleteFailed)
		if apperrors.KindOf(derr) == apperrors.KindInternal {
			s.log.ErrorContext(ctx, "delete wallet failed",
				logger.FieldOperation, logger.OpDelete,
				logger.FieldWalletID, id,
				logger.FieldError, err)
		}
		return derr
	}

	s.invalidateSummaries(ctx, userID)
	return nil
}

func (s *service) checkWalletType(ctx context.Context, userID uint, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.ledger.WalletTypes().GetOwned(ctx, userID, *id); err != nil {
		return domainError(err, msgLoadFailed)
	}
	return nil
}

func (s *service) invalidateSummaries(ctx context.Context, userID uint) {
	if err := cache.InvalidateSummaries(ctx, s.cache, userID); err != nil {
		s.log.WarnContext(ctx, "invalidate summary cache failed",
			logger.FieldUserID, userID,
			logger.FieldError, err)
	}
}
