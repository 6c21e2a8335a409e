// Package balance applies and reverts the effect of a transaction on a
// wallet balance. It is the only code that changes a balance because of a
// transaction.
//
// Callers must hold the wallet row lock (repositories.WalletRepository.LockOwned)
// inside a Ledger unit of work, and must pass the same *models.Wallet to a
// Revert followed by an Apply on one wallet so the two steps compose.
package balance

import (
	"context"
	"errors"
	"fmt"

	"catatuang/internal/models"
	"catatuang/internal/repositories"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits balances and amounts carry.
const Scale = 2

var ErrUnknownType = errors.New("unknown transaction type")

// Signed returns the effect of a transaction on its wallet balance:
// +amount for income, -amount for expense.
func Signed(amount decimal.Decimal, txType models.TransactionType) (decimal.Decimal, error) {
	switch txType {
	case models.TransactionTypeIncome:
		return amount, nil
	case models.TransactionTypeExpense:
		return amount.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownType, txType)
}

// Apply adds the effect of (amount, txType) to wallet and persists the new balance.
func Apply(ctx context.Context, wallets repositories.WalletRepository, wallet *models.Wallet, amount decimal.Decimal, txType models.TransactionType) error {
	delta, err := Signed(amount, txType)
	if err != nil {
		return err
	}
	return adjust(ctx, wallets, wallet, delta)
}

// Revert removes the effect of (amount, txType) from wallet and persists the new balance.
func Revert(ctx context.Context, wallets repositories.WalletRepository, wallet *models.Wallet, amount decimal.Decimal, txType models.TransactionType) error {
	delta, err := Signed(amount, txType)
	if err != nil {
		return err
	}
	return adjust(ctx, wallets, wallet, delta.Neg())
}

func adjust(ctx context.Context, wallets repositories.WalletRepository, wallet *models.Wallet, delta decimal.Decimal) error {
	next := wallet.Balance.Add(delta).Round(Scale)
	if err := wallets.UpdateBalance(ctx, wallet.ID, next); err != nil {
		return fmt.Errorf("persist balance of wallet %d: %w", wallet.ID, err)
	}
	wallet.Balance = next
	return nil
}
