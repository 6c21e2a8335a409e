package logger

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldUserID        = "user_id"
	FieldWalletID      = "wallet_id"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldStatusCode    = "status_code"
)

const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentAuth     = "auth"
	ComponentLedger   = "ledger"
	ComponentWallet   = "wallet"
	ComponentCategory = "category"
	ComponentStorage  = "storage"
	ComponentCache    = "cache"
	ComponentEvents   = "events"
	ComponentSeed     = "seed"
)

const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpSummary = "summary"
	OpPublish = "publish"
	OpMigrate = "migrate"
)
