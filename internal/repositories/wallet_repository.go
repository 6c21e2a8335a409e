package repositories

import (
	"context"
	"errors"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrWalletTypeNotFound = errors.New("wallet type not found")
)

// WalletRepository defines the interface for wallet-related database operations.
// Every lookup is scoped by owner; a wallet of another user is reported as
// ErrWalletNotFound.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetOwned(ctx context.Context, userID, id uint) (*models.Wallet, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Wallet, error)
	// Update persists name and wallet type. Balance is never written here.
	Update(ctx context.Context, wallet *models.Wallet) error
	Delete(ctx context.Context, userID, id uint) error

	// LockOwned reads the wallet with SELECT ... FOR UPDATE. Only meaningful
	// inside ExecuteInTransaction.
	LockOwned(ctx context.Context, userID, id uint) (*models.Wallet, error)
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	TotalBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
}

// WalletTypeRepository stores the user defined wallet labels.
type WalletTypeRepository interface {
	Create(ctx context.Context, walletType *models.UserWalletType) error
	GetOwned(ctx context.Context, userID, id uint) (*models.UserWalletType, error)
	ListByUser(ctx context.Context, userID uint) ([]models.UserWalletType, error)
	Update(ctx context.Context, walletType *models.UserWalletType) error
	Delete(ctx context.Context, userID, id uint) error
}
