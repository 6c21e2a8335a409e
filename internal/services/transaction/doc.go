/*
Package transaction records incomes and expenses against a user's wallets and
keeps every wallet balance equal to its opening balance plus the signed sum of
its transactions.

Create, Update and Delete each run as one Ledger unit of work. Wallet rows are
locked before their balance is read; when a unit touches a transaction row it
is locked first, then wallets in ascending id order. Balances are only changed
through the balance package.

Once a unit commits, the user's cached summaries are invalidated and an event
is published. Failures of either are logged and never reported to the caller.

Usage:

	svc := transaction.NewService(repositories.NewLedger(db), cacheService, publisher, log)

	tx, err := svc.Create(ctx, userID, transaction.Input{
	    WalletID:        1,
	    CategoryID:      3,
	    Amount:          decimal.RequireFromString("150000"),
	    TransactionDate: models.NewDate(2024, 1, 15),
	    Type:            models.TransactionTypeExpense,
	})

	page, err := svc.List(ctx, userID, transaction.Filter{Page: 2})
	summary, err := svc.Summary(ctx, userID, transaction.Period{})
*/
package transaction
