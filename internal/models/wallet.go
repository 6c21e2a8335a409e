package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a user's money in one place. Balance is the opening balance
// plus the signed amounts of every transaction recorded against the wallet.
type Wallet struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	UserID           uint            `gorm:"index;not null" json:"user_id"`
	UserWalletTypeID *uint           `json:"user_wallet_type_id"`
	Name             string          `gorm:"size:100;not null" json:"name"`
	Balance          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"balance"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	WalletType *UserWalletType `gorm:"foreignKey:UserWalletTypeID" json:"wallet_type,omitempty"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	w.Balance = w.Balance.Round(2)
	return nil
}

// UserWalletType is a user defined label such as "Bank" or "E-Wallet".
type UserWalletType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Icon      *string   `gorm:"size:50" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
