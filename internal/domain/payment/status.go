package payment

// ===============================
// Payment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// UnknownMethod is recorded when the processor reports no payment method.
const UnknownMethod = "unknown"
