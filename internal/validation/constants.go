package validation

import "github.com/shopspring/decimal"

var (
	// Amount limits, bounded by NUMERIC(15,2).
	MinTransactionAmount = decimal.RequireFromString("0.01")
	MaxAmount            = decimal.RequireFromString("9999999999999.99")
)

const (
	// Password requirements. bcrypt ignores bytes past 72.
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxUserFieldLength   = 255
	MaxNameLength        = 100
	MaxIconLength        = 50
	MaxDescriptionLength = 1000
)
