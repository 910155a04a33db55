package stripe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
)

const secret = "whsec_test"

func TestVerifyCheckoutCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"amount_total": 5000,
			"payment_intent": "pi_1",
			"payment_method_types": ["card"],
			"metadata": {"client_id": "7", "appointment_id": "42"}
		}}
	}`)

	ev, err := NewVerifier(secret, 0).Verify(payload, SignatureHeader(payload, secret, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, payment.KindCheckoutCompleted, ev.Kind)
	require.NotNil(t, ev.Checkout)
	assert.Equal(t, "cs_1", ev.Checkout.SessionID)
	assert.Equal(t, "pi_1", ev.Checkout.PaymentIntentID)
	assert.Equal(t, int64(5000), ev.Checkout.AmountTotal)
	assert.Equal(t, "card", ev.Checkout.Method())
	assert.Equal(t, "7", ev.Checkout.Metadata["client_id"])
	assert.Equal(t, payload, ev.Raw)
}

func TestVerifyIntentAndCharge(t *testing.T) {
	v := NewVerifier(secret, 0)

	intent := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_9","object":"payment_intent"}}}`)
	ev, err := v.Verify(intent, SignatureHeader(intent, secret, time.Now()))
	require.NoError(t, err)
	require.NotNil(t, ev.Intent)
	assert.Equal(t, "pi_9", ev.Intent.PaymentIntentID)

	charge := []byte(`{"id":"evt_3","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge","payment_intent":"pi_9"}}}`)
	ev, err = v.Verify(charge, SignatureHeader(charge, secret, time.Now()))
	require.NoError(t, err)
	require.NotNil(t, ev.Intent)
	assert.Equal(t, "pi_9", ev.Intent.PaymentIntentID)
}

func TestVerifyRejectsBadSignatures(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded"}`)
	v := NewVerifier(secret, 5*time.Minute)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"garbage", "not-a-signature"},
		{"wrong secret", SignatureHeader(payload, "whsec_other", time.Now())},
		{"too old", SignatureHeader(payload, secret, time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(payload, tt.header)
			assert.True(t, errors.Is(err, payment.ErrInvalidSignature), "got %v", err)
		})
	}

	_, err := NewVerifier("", 0).Verify(payload, SignatureHeader(payload, "", time.Now()))
	assert.True(t, errors.Is(err, payment.ErrInvalidSignature))
}

func TestVerifyTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded"}`)
	header := SignatureHeader(payload, secret, time.Now())

	tampered := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.payment_failed"}`)
	_, err := NewVerifier(secret, 0).Verify(tampered, header)
	assert.True(t, errors.Is(err, payment.ErrInvalidSignature))
}
