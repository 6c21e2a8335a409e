package transaction

import (
	"context"
	"sort"
	"time"

	"catatuang/internal/events"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/repositories/cache"
	"catatuang/internal/services/balance"
)

type Service interface {
	Create(ctx context.Context, userID uint, in Input) (*models.Transaction, error)
	Get(ctx context.Context, userID, id uint) (*models.Transaction, error)
	Update(ctx context.Context, userID, id uint, in Input) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint, filter Filter) (*Page, error)
	Summary(ctx context.Context, userID uint, period Period) (*Summary, error)
}

type service struct {
	ledger    repositories.Ledger
	cache     cache.Cache
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewService panics when ledger is nil. A nil cache, publisher or logger
// disables that concern.
func NewService(ledger repositories.Ledger, c cache.Cache, publisher events.Publisher, log *logger.Logger) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if c == nil {
		c = cache.Noop{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		ledger:    ledger,
		cache:     c,
		publisher: publisher,
		log:       log.WithComponent(logger.ComponentLedger),
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID uint, in Input) (*models.Transaction, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, userID, in.WalletID, in.CategoryID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:          userID,
		WalletID:        in.WalletID,
		CategoryID:      in.CategoryID,
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		Type:            in.Type,
	}

	err := s.ledger.ExecuteInTransaction(ctx, func(l repositories.Ledger) error {
		wallet, err := l.Wallets().LockOwned(ctx, userID, tx.WalletID)
		if err != nil {
			return err
		}
		if err := l.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		return balance.Apply(ctx, l.Wallets(), wallet, tx.Amount, tx.Type)
	})
	if err != nil {
		s.log.ErrorContext(ctx, "create transaction failed",
			logger.FieldOperation, logger.OpCreate,
			logger.FieldUserID, userID,
			logger.FieldWalletID, in.WalletID,
			logger.FieldError, err)
		return nil, domainError(err, msgCreateFailed)
	}

	s.committed(ctx, events.NewEvent(events.TransactionCreated, tx))
	return s.reload(ctx, tx), nil
}

func (s *service) Get(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	tx, err := s.ledger.Transactions().GetOwned(ctx, userID, id)
	if err != nil {
		return nil, domainError(err, msgLoadFailed)
	}
	return tx, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, in Input) (*models.Transaction, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, userID, in.WalletID, in.CategoryID); err != nil {
		return nil, err
	}

	var previous, next models.Transaction
	err := s.ledger.ExecuteInTransaction(ctx, func(l repositories.Ledger) error {
		old, err := l.Transactions().LockOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		wallets, err := lockWallets(ctx, l.Wallets(), userID, old.WalletID, in.WalletID)
		if err != nil {
			return err
		}

		if err := balance.Revert(ctx, l.Wallets(), wallets[old.WalletID], old.Amount, old.Type); err != nil {
			return err
		}

		updated := *old
		updated.WalletID = in.WalletID
		updated.CategoryID = in.CategoryID
		updated.Amount = in.Amount
		updated.Description = in.Description
		updated.TransactionDate = in.TransactionDate
		updated.Type = in.Type
		if err := l.Transactions().Update(ctx, &updated); err != nil {
			return err
		}

		if err := balance.Apply(ctx, l.Wallets(), wallets[updated.WalletID], updated.Amount, updated.Type); err != nil {
			return err
		}
		previous, next = *old, updated
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "update transaction failed",
			logger.FieldOperation, logger.OpUpdate,
			logger.FieldUserID, userID,
			logger.FieldTransactionID, id,
			logger.FieldError, err)
		return nil, domainError(err, msgUpdateFailed)
	}

	event := events.NewEvent(events.TransactionUpdated, &next)
	if previous.WalletID != next.WalletID {
		event.PreviousWalletID = &previous.WalletID
	}
	s.committed(ctx, event)
	return s.reload(ctx, &next), nil
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	var deleted models.Transaction
	err := s.ledger.ExecuteInTransaction(ctx, func(l repositories.Ledger) error {
		old, err := l.Transactions().LockOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		wallet, err := l.Wallets().LockOwned(ctx, userID, old.WalletID)
		if err != nil {
			return err
		}
		if err := balance.Revert(ctx, l.Wallets(), wallet, old.Amount, old.Type); err != nil {
			return err
		}
		if err := l.Transactions().Delete(ctx, userID, id); err != nil {
			return err
		}
		deleted = *old
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "delete transaction failed",
			logger.FieldOperation, logger.OpDelete,
			logger.FieldUserID, userID,
			logger.FieldTransactionID, id,
			logger.FieldError, err)
		return domainError(err, msgDeleteFailed)
	}

	s.committed(ctx, events.NewEvent(events.TransactionDeleted, &deleted))
	return nil
}

// checkOwnership reports a wallet or category of another user exactly like
// a missing one.
func (s *service) checkOwnership(ctx context.Context, userID, walletID, categoryID uint) error {
	if _, err := s.ledger.Wallets().GetOwned(ctx, userID, walletID); err != nil {
		return domainError(err, msgLoadFailed)
	}
	if _, err := s.ledger.Categories().GetOwned(ctx, userID, categoryID); err != nil {
		return domainError(err, msgLoadFailed)
	}
	return nil
}

// lockWallets locks the distinct wallets among ids in ascending id order.
// Equal ids map to the same *models.Wallet.
func lockWallets(ctx context.Context, wallets repositories.WalletRepository, userID uint, ids ...uint) (map[uint]*models.Wallet, error) {
	sorted := append([]uint(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make(map[uint]*models.Wallet, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		w, err := wallets.LockOwned(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		locked[id] = w
	}
	return locked, nil
}

// committed runs the side effects of a committed mutation. Their failures
// are logged only.
func (s *service) committed(ctx context.Context, event events.Event) {
	if err := cache.InvalidateSummaries(ctx, s.cache, event.UserID); err != nil {
		s.log.WarnContext(ctx, "invalidate summary cache failed",
			logger.FieldUserID, event.UserID,
			logger.FieldError, err)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "publish ledger event failed",
			logger.FieldOperation, logger.OpPublish,
			logger.FieldTransactionID, event.TransactionID,
			logger.FieldError, err)
	}
}

// reload returns tx with its wallet and category. The row is already
// committed, so a failed read falls back to the bare row.
func (s *service) reload(ctx context.Context, tx *models.Transaction) *models.Transaction {
	loaded, err := s.ledger.Transactions().GetOwned(ctx, tx.UserID, tx.ID)
	if err != nil {
		s.log.WarnContext(ctx, "reload transaction failed",
			logger.FieldTransactionID, tx.ID,
			logger.FieldError, err)
		return tx
	}
	return loaded
}
