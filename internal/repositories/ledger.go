package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Ledger groups the repositories whose rows must change together. Inside
// ExecuteInTransaction every repository handed to fn shares one database
// transaction; an error returned by fn rolls all of them back.
type Ledger interface {
	Wallets() WalletRepository
	WalletTypes() WalletTypeRepository
	Categories() CategoryRepository
	Transactions() TransactionRepository

	ExecuteInTransaction(ctx context.Context, fn func(Ledger) error) error
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) Wallets() WalletRepository {
	return &walletRepository{db: l.db}
}

func (l *ledger) WalletTypes() WalletTypeRepository {
	return &walletTypeRepository{db: l.db}
}

func (l *ledger) Categories() CategoryRepository {
	return &categoryRepository{db: l.db}
}

func (l *ledger) Transactions() TransactionRepository {
	return &transactionRepository{db: l.db}
}

func (l *ledger) ExecuteInTransaction(ctx context.Context, fn func(Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledger{db: tx})
	})
}
