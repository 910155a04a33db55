package payment

import (
	"errors"
	"strings"
)

// Event kinds the reconciler acts on.
const (
	KindCheckoutCompleted = "checkout.session.completed"
	KindPaymentSucceeded  = "payment_intent.succeeded"
	KindPaymentFailed     = "payment_intent.payment_failed"
	KindChargeRefunded    = "charge.refunded"
	TestEventPrefix       = "evt_test_"
)

// ErrInvalidSignature marks a delivery whose origin could not be verified.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Event is a verified processor notification.
type Event struct {
	ID   string
	Kind string

	Checkout *CheckoutCompleted
	Intent   *IntentUpdate

	Raw []byte
}

func (e Event) IsTest() bool {
	return strings.HasPrefix(e.ID, TestEventPrefix)
}

type CheckoutCompleted struct {
	SessionID       string
	PaymentIntentID string
	AmountTotal     int64
	MethodTypes     []string
	Metadata        map[string]string
}

// Method returns the first payment method type, or UnknownMethod.
func (c CheckoutCompleted) Method() string {
	if len(c.MethodTypes) == 0 || c.MethodTypes[0] == "" {
		return UnknownMethod
	}
	return c.MethodTypes[0]
}

type IntentUpdate struct {
	PaymentIntentID string
}

// CheckoutSessionInput describes a hosted checkout for one appointment.
type CheckoutSessionInput struct {
	AppointmentID uint
	ClientID      uint
	Description   string
	AmountInCents int64
}

type CheckoutSession struct {
	ID  string
	URL string
}
