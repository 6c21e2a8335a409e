package transaction

import (
	"strings"

	"catatuang/internal/models"
	"catatuang/internal/utils/pagination"
	"catatuang/internal/validation"

	"github.com/shopspring/decimal"
)

// PageSize is the fixed number of rows per List page.
const PageSize = 20

// Input is the full set of client supplied fields for create and update.
type Input struct {
	WalletID        uint                   `json:"wallet_id"`
	CategoryID      uint                   `json:"category_id"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     *string                `json:"description"`
	TransactionDate models.Date            `json:"transaction_date"`
	Type            models.TransactionType `json:"type"`
}

// normalize rounds the amount, trims the description and validates the result.
func (in *Input) normalize() error {
	in.Amount = in.Amount.Round(2)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}

	v := validation.New()
	v.RequiredID("wallet_id", in.WalletID)
	v.RequiredID("category_id", in.CategoryID)
	v.MinAmount("amount", in.Amount, validation.MinTransactionAmount)
	v.MaxAmount("amount", in.Amount, validation.MaxAmount)
	if in.Description != nil {
		v.MaxLength("description", *in.Description, validation.MaxDescriptionLength)
	}
	v.RequiredDate("transaction_date", in.TransactionDate)
	v.TransactionType("type", in.Type)
	return v.Err()
}

// Filter narrows List. Nil fields are not applied.
type Filter struct {
	StartDate *models.Date
	EndDate   *models.Date
	Type      *models.TransactionType
	WalletID  *uint
	Page      int
}

// Page is one page of transactions, newest first.
type Page = pagination.Page[models.Transaction]

// Period bounds a summary. Zero values default to the current month.
type Period struct {
	StartDate *models.Date
	EndDate   *models.Date
}

type SummaryPeriod struct {
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
}

type Totals struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Balance       decimal.Decimal `json:"balance"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

// Summary reports income and expense over a period next to the live total
// of all wallet balances, which is not bound to the period.
type Summary struct {
	Period  SummaryPeriod `json:"period"`
	Summary Totals        `json:"summary"`
}
