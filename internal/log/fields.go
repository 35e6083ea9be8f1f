package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldRows       = "rows"
	FieldDropped    = "dropped_rows"
	FieldTxnID      = "transaction_id"
	FieldKind       = "kind"
	FieldCategory   = "category"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentAMQP   = "amqp"
	ComponentWorker = "worker"
)
