package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldCategory  = "category"
	FieldCurrency  = "currency"
	FieldSymbol    = "symbol"
	FieldDate      = "date"
	FieldTimestamp = "timestamp"
	FieldRecords   = "records"
	FieldPath      = "path"
	FieldStatus    = "status"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentSource   = "source"
	ComponentLedger   = "ledger"
	ComponentMarket   = "marketdata"
	ComponentReport   = "report"
	ComponentSink     = "sink"
)
