package transaction

import (
	"errors"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/repositories"
)

// Messages for failures the client cannot correct.
const (
	msgCreateFailed  = "Failed to create transaction"
	msgUpdateFailed  = "Failed to update transaction"
	msgDeleteFailed  = "Failed to delete transaction"
	msgLoadFailed    = "Failed to load transaction"
	msgListFailed    = "Failed to load transactions"
	msgSummaryFailed = "Failed to load transaction summary"
)

// domainError maps repository sentinels to their client facing errors and
// reports anything else as an internal error carrying message.
func domainError(err error, message string) error {
	switch {
	case errors.Is(err, repositories.ErrWalletNotFound):
		return apperrors.ErrWalletNotFound
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrCategoryNotFound
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return apperrors.ErrTransactionNotFound
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(message, err)
}
