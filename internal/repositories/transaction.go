package repositories

import (
	"context"
	"errors"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

// TransactionFilter narrows a user's transaction list. Nil fields are not applied.
type TransactionFilter struct {
	UserID    uint
	StartDate *models.Date
	EndDate   *models.Date
	Type      *models.TransactionType
	WalletID  *uint
	Limit     int
	Offset    int
}

// TransactionRepository persists transaction rows. It never touches wallet
// balances; keeping them consistent is the caller's job inside a Ledger unit.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, userID, id uint) error

	// GetOwned loads the transaction with its wallet and category.
	GetOwned(ctx context.Context, userID, id uint) (*models.Transaction, error)
	// LockOwned reads the bare row with SELECT ... FOR UPDATE.
	LockOwned(ctx context.Context, userID, id uint) (*models.Transaction, error)

	// List returns one page ordered newest first plus the unpaged total.
	List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)
	// SumByType totals amounts of one type with transaction_date in [start, end].
	SumByType(ctx context.Context, userID uint, txType models.TransactionType, start, end models.Date) (decimal.Decimal, error)

	CountByWallet(ctx context.Context, walletID uint) (int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.UserCategory) error
	GetOwned(ctx context.Context, userID, id uint) (*models.UserCategory, error)
	ListByUser(ctx context.Context, userID uint, txType *models.TransactionType) ([]models.UserCategory, error)
	Update(ctx context.Context, category *models.UserCategory) error
	Delete(ctx context.Context, userID, id uint) error
}
