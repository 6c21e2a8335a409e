package wallet

import (
	"errors"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/repositories"
)

const (
	msgLoadFailed   = "Failed to load wallet"
	msgCreateFailed = "Failed to create wallet"
	msgUpdateFailed = "Failed to update wallet"
	msgDeleteFailed = "Failed to delete wallet"
)

func domainError(err error, message string) error {
	switch {
	case errors.Is(err, repositories.ErrWalletNotFound):
		return apperrors.ErrWalletNotFound
	case errors.Is(err, repositories.ErrWalletTypeNotFound):
		return apperrors.ErrWalletTypeNotFound
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return apperrors.ErrWalletInUse
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(message, err)
}
