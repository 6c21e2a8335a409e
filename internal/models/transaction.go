package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

// Transaction types
const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionTypes lists every accepted type, in display order.
var TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense}

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

func (t TransactionType) String() string {
	return string(t)
}

// UserCategory classifies transactions. Owned by exactly one user.
type UserCategory struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Type      TransactionType `gorm:"size:10;not null" json:"type"`
	Icon      *string         `gorm:"size:50" json:"icon"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Transaction struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	WalletID        uint            `gorm:"index;not null" json:"wallet_id"`
	CategoryID      uint            `gorm:"index;not null" json:"category_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description     *string         `json:"description"`
	TransactionDate Date            `gorm:"type:date;not null" json:"transaction_date"`
	Type            TransactionType `gorm:"size:10;not null" json:"type"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Wallet   *Wallet       `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
	Category *UserCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
