package payment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// CheckoutRecord is the store-facing form of a completed checkout session.
type CheckoutRecord struct {
	ClientID        uint
	AppointmentID   *uint
	SessionID       string
	PaymentIntentID string
	AmountInCents   int64
	Method          string
	PaidAt          time.Time
}

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeCompleted Outcome = "completed"
	OutcomeUnchanged Outcome = "unchanged"
)

type Repository interface {
	// RecordCheckoutCompleted upserts the payment keyed on the session id.
	RecordCheckoutCompleted(ctx context.Context, rec CheckoutRecord) (*models.Payment, Outcome, error)

	// UpdateByIntent moves every payment carrying intentID whose status is in
	// from to status to. paidAt is written when non-nil.
	UpdateByIntent(
		ctx context.Context,
		intentID string,
		from []Status,
		to Status,
		paidAt *time.Time,
	) (int64, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, clientID *uint) ([]models.Payment, error)

	// GetAppointmentForCheckout returns nil, nil when no row matches.
	GetAppointmentForCheckout(ctx context.Context, id uint) (*models.Appointment, error)
}
