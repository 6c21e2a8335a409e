package wallet

import (
	"strings"

	"catatuang/internal/validation"

	"github.com/shopspring/decimal"
)

// CreateInput holds the fields of a new wallet. Balance is the opening balance.
type CreateInput struct {
	Name             string           `json:"name"`
	UserWalletTypeID *uint            `json:"user_wallet_type_id"`
	Balance          *decimal.Decimal `json:"balance"`
}

func (in *CreateInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Balance != nil {
		b := in.Balance.Round(2)
		in.Balance = &b
	}

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, validation.MaxNameLength)
	if in.Balance != nil {
		v.MinAmount("balance", *in.Balance, decimal.Zero)
		v.MaxAmount("balance", *in.Balance, validation.MaxAmount)
	}
	return v.Err()
}

func (in *CreateInput) openingBalance() decimal.Decimal {
	if in.Balance == nil {
		return decimal.Zero
	}
	return *in.Balance
}

// UpdateInput changes a wallet's label. A balance sent by the client is
// not part of it.
type UpdateInput struct {
	Name             string `json:"name"`
	UserWalletTypeID *uint  `json:"user_wallet_type_id"`
}

func (in *UpdateInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, validation.MaxNameLength)
	return v.Err()
}
