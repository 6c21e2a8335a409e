/*
Package wallet provides wallet management for a user's accounts.

A wallet's balance is set once, when the wallet is created. From then on only
the transaction service changes it, so Update accepts a name and wallet type
and never a balance.

Usage:

	svc := wallet.NewService(repositories.NewLedger(db), cacheService, log)

	w, err := svc.Create(ctx, userID, wallet.CreateInput{
	    Name:    "BCA Tabungan",
	    Balance: decimal.NewFromInt(5000000),
	})

	wallets, err := svc.List(ctx, userID)

Error Handling:

The service returns DomainErrors from internal/errors:
- ErrWalletNotFound: missing wallet or a wallet of another user
- ErrWalletTypeNotFound: the referenced wallet type is not the user's
- ErrWalletInUse: delete of a wallet that still has transactions
- Validation errors with per-field messages

Cache Management:

Creating or deleting a wallet changes the user's total wallet balance, so
both invalidate the cached transaction summaries.
*/
package wallet
