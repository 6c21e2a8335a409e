package errors

var (
	ErrWalletNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WALLET_NOT_FOUND",
		Message: "Wallet not found or access denied",
	}
	ErrWalletTypeNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WALLET_TYPE_NOT_FOUND",
		Message: "Wallet type not found or access denied",
	}
	ErrCategoryNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "CATEGORY_NOT_FOUND",
		Message: "Category not found or access denied",
	}
	ErrTransactionNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "Transaction not found",
	}
	ErrWalletInUse = &DomainError{
		Kind:    KindConflict,
		Code:    "WALLET_IN_USE",
		Message: "Wallet still has transactions and cannot be deleted",
	}
	ErrCategoryInUse = &DomainError{
		Kind:    KindConflict,
		Code:    "CATEGORY_IN_USE",
		Message: "Category still has transactions and cannot be deleted",
	}
)
