package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
)

// Verifier authenticates Stripe webhook deliveries and decodes the parts of
// the event payload the reconciler needs.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance}
}

// Verify returns an error wrapping payment.ErrInvalidSignature when the
// Stripe-Signature header does not match payload. Any other error means the
// signed payload could not be decoded.
func (v *Verifier) Verify(payload []byte, signature string) (payment.Event, error) {
	if v.secret == "" {
		return payment.Event{}, fmt.Errorf("%w: webhook secret not configured", payment.ErrInvalidSignature)
	}

	if err := webhook.ValidatePayloadWithTolerance(payload, signature, v.secret, v.tolerance); err != nil {
		return payment.Event{}, fmt.Errorf("%w: %v", payment.ErrInvalidSignature, err)
	}

	var ev stripeapi.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return payment.Event{}, fmt.Errorf("decode event: %w", err)
	}

	out := payment.Event{
		ID:   ev.ID,
		Kind: string(ev.Type),
		Raw:  payload,
	}
	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}

	switch out.Kind {
	case payment.KindCheckoutCompleted:
		var s stripeapi.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return out, fmt.Errorf("decode checkout session: %w", err)
		}
		out.Checkout = &payment.CheckoutCompleted{
			SessionID:   s.ID,
			AmountTotal: s.AmountTotal,
			MethodTypes: s.PaymentMethodTypes,
			Metadata:    s.Metadata,
		}
		if s.PaymentIntent != nil {
			out.Checkout.PaymentIntentID = s.PaymentIntent.ID
		}

	case payment.KindPaymentSucceeded, payment.KindPaymentFailed:
		var pi stripeapi.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return out, fmt.Errorf("decode payment intent: %w", err)
		}
		out.Intent = &payment.IntentUpdate{PaymentIntentID: pi.ID}

	case payment.KindChargeRefunded:
		var ch stripeapi.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return out, fmt.Errorf("decode charge: %w", err)
		}
		if ch.PaymentIntent != nil {
			out.Intent = &payment.IntentUpdate{PaymentIntentID: ch.PaymentIntent.ID}
		}
	}

	return out, nil
}
