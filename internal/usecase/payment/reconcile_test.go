package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/stripe"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

const webhookSecret = "whsec_reconcile"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	db    *gorm.DB
	uc    *ReconcilePayment
	clock *clock
}

func newEnv(t *testing.T, opts ...ReconcileOption) env {
	db := testutil.NewDB(t)
	clk := &clock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	opts = append([]ReconcileOption{WithClock(clk.now)}, opts...)
	uc := NewReconcilePayment(
		repository.NewPaymentGormRepository(db),
		stripe.NewVerifier(webhookSecret, 5*time.Minute),
		opts...,
	)
	return env{db: db, uc: uc, clock: clk}
}

// seedShop creates client 7 and appointment 42.
func seedShop(t *testing.T, db *gorm.DB) {
	t.Helper()
	client := &models.Client{ID: 7, Name: "Ana", Phone: "+55 11 90000-0000", IsActive: true}
	require.NoError(t, db.Create(client).Error)
	barber := testutil.Barber(t, db, "Bruno")
	service := testutil.Service(t, db, "Corte", 5000)
	ap := &models.Appointment{
		ID:              42,
		ClientID:        client.ID,
		BarberID:        barber.ID,
		ServiceID:       service.ID,
		AppointmentDate: time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
		Status:          "confirmed",
	}
	require.NoError(t, db.Create(ap).Error)
}

func (e env) deliver(t *testing.T, payload string) (ReconcileResult, error) {
	t.Helper()
	body := []byte(payload)
	return e.uc.Execute(context.Background(), body, stripe.SignatureHeader(body, webhookSecret, time.Now()))
}

func checkoutEvent(eventID, sessionID, intentID string, amount int64, metadata string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": %q,
			"object": "checkout.session",
			"amount_total": %d,
			"payment_intent": %q,
			"payment_method_types": ["card"],
			"metadata": %s
		}}
	}`, eventID, sessionID, amount, intentID, metadata)
}

func intentEvent(eventID, kind, intentID string) string {
	return fmt.Sprintf(`{"id":%q,"object":"event","type":%q,"data":{"object":{"id":%q,"object":"payment_intent"}}}`,
		eventID, kind, intentID)
}

func payments(t *testing.T, db *gorm.DB) []models.Payment {
	t.Helper()
	var out []models.Payment
	require.NoError(t, db.Order("id ASC").Find(&out).Error)
	return out
}

func TestCheckoutCompletedThenSucceeded(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	res, err := e.deliver(t, checkoutEvent("evt_1", "cs_1", "pi_1", 5000, `{"client_id":"7","appointment_id":"42"}`))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", res.EventID)

	rows := payments(t, e.db)
	require.Len(t, rows, 1)
	p := rows[0]
	assert.Equal(t, uint(7), p.ClientID)
	require.NotNil(t, p.AppointmentID)
	assert.Equal(t, uint(42), *p.AppointmentID)
	assert.Equal(t, int64(5000), p.AmountInCents)
	assert.Equal(t, "completed", p.Status)
	assert.Equal(t, "card", p.PaymentMethod)
	assert.Equal(t, "pi_1", *p.StripePaymentIntentID)
	assert.Equal(t, "cs_1", *p.StripeSessionID)
	require.NotNil(t, p.PaidAt)
	assert.True(t, p.PaidAt.Equal(e.clock.t))

	e.clock.advance(time.Hour)
	_, err = e.deliver(t, intentEvent("evt_2", domain.KindPaymentSucceeded, "pi_1"))
	require.NoError(t, err)

	rows = payments(t, e.db)
	require.Len(t, rows, 1)
	assert.Equal(t, "completed", rows[0].Status)
	assert.True(t, rows[0].PaidAt.Equal(e.clock.t))
}

func TestCheckoutCompletedRedeliveryKeepsOneRow(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	payload := checkoutEvent("evt_1", "cs_1", "pi_1", 5000, `{"client_id":"7"}`)
	for i := 0; i < 3; i++ {
		_, err := e.deliver(t, payload)
		require.NoError(t, err)
	}

	rows := payments(t, e.db)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].AppointmentID)
}

func TestCheckoutCompletedUpgradesPendingRow(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	session := "cs_pending"
	appointmentID := uint(42)
	require.NoError(t, e.db.Create(&models.Payment{
		AppointmentID:   &appointmentID,
		ClientID:        7,
		AmountInCents:   5000,
		Status:          "pending",
		StripeSessionID: &session,
	}).Error)

	_, err := e.deliver(t, checkoutEvent("evt_1", session, "pi_7", 4500, `{"client_id":"7","appointment_id":"42"}`))
	require.NoError(t, err)

	rows := payments(t, e.db)
	require.Len(t, rows, 1)
	assert.Equal(t, "completed", rows[0].Status)
	assert.Equal(t, int64(4500), rows[0].AmountInCents)
	assert.Equal(t, "pi_7", *rows[0].StripePaymentIntentID)
	assert.NotNil(t, rows[0].PaidAt)
}

func TestCheckoutCompletedDropsUnusableMetadata(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	for _, meta := range []string{`{}`, `{"client_id":"abc"}`, `{"client_id":""}`} {
		_, err := e.deliver(t, checkoutEvent("evt_x", "cs_x", "pi_x", 100, meta))
		require.NoError(t, err)
	}
	assert.Empty(t, payments(t, e.db))

	_, err := e.deliver(t, checkoutEvent("evt_y", "cs_y", "pi_y", 100, `{"client_id":"7","appointment_id":"soon"}`))
	require.NoError(t, err)
	rows := payments(t, e.db)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].AppointmentID)
}

func TestPaymentIntentSucceededIsIdempotent(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	intent := "pi_2"
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "pending", StripePaymentIntentID: &intent}).Error)

	for i := 0; i < 2; i++ {
		_, err := e.deliver(t, intentEvent("evt_s", domain.KindPaymentSucceeded, intent))
		require.NoError(t, err)

		rows := payments(t, e.db)
		require.Len(t, rows, 1)
		assert.Equal(t, "completed", rows[0].Status)
		assert.NotNil(t, rows[0].PaidAt)
	}

	_, err := e.deliver(t, intentEvent("evt_u", domain.KindPaymentSucceeded, "pi_unknown"))
	require.NoError(t, err)
	assert.Len(t, payments(t, e.db), 1)
}

func TestPaymentFailedOnlyTouchesPending(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	pending, done := "pi_pending", "pi_done"
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "pending", StripePaymentIntentID: &pending}).Error)
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "completed", StripePaymentIntentID: &done}).Error)

	_, err := e.deliver(t, intentEvent("evt_f1", domain.KindPaymentFailed, pending))
	require.NoError(t, err)
	_, err = e.deliver(t, intentEvent("evt_f2", domain.KindPaymentFailed, done))
	require.NoError(t, err)
	_, err = e.deliver(t, intentEvent("evt_f3", domain.KindPaymentFailed, "pi_none"))
	require.NoError(t, err)

	rows := payments(t, e.db)
	require.Len(t, rows, 2)
	assert.Equal(t, "failed", rows[0].Status)
	assert.Equal(t, "completed", rows[1].Status)
}

func TestPaymentSucceededAfterFailedAttempt(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	intent, refunded := "pi_retry", "pi_refunded"
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "pending", StripePaymentIntentID: &intent}).Error)
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "refunded", StripePaymentIntentID: &refunded}).Error)

	_, err := e.deliver(t, intentEvent("evt_decline", domain.KindPaymentFailed, intent))
	require.NoError(t, err)
	assert.Equal(t, "failed", payments(t, e.db)[0].Status)

	e.clock.advance(time.Minute)
	_, err = e.deliver(t, intentEvent("evt_retry_ok", domain.KindPaymentSucceeded, intent))
	require.NoError(t, err)
	_, err = e.deliver(t, intentEvent("evt_late_ok", domain.KindPaymentSucceeded, refunded))
	require.NoError(t, err)

	rows := payments(t, e.db)
	require.Len(t, rows, 2)
	assert.Equal(t, "completed", rows[0].Status)
	require.NotNil(t, rows[0].PaidAt)
	assert.True(t, rows[0].PaidAt.Equal(e.clock.t))
	assert.Equal(t, "refunded", rows[1].Status)
	assert.Nil(t, rows[1].PaidAt)
}

func TestChargeRefunded(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	intent := "pi_r"
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "completed", StripePaymentIntentID: &intent}).Error)

	_, err := e.deliver(t, `{"id":"evt_r","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge","payment_intent":"pi_r"}}}`)
	require.NoError(t, err)

	assert.Equal(t, "refunded", payments(t, e.db)[0].Status)
}

func TestTestEventShortCircuits(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)

	res, err := e.deliver(t, checkoutEvent("evt_test_webhook", "cs_t", "pi_t", 100, `{"client_id":"7"}`))
	require.NoError(t, err)
	assert.True(t, res.Test)
	assert.Empty(t, payments(t, e.db))
}

func TestUnknownEventAcknowledged(t *testing.T) {
	e := newEnv(t)

	res, err := e.deliver(t, `{"id":"evt_c","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)
	require.NoError(t, err)
	assert.Equal(t, "customer.created", res.Kind)
}

func TestRejectsUnauthenticatedDeliveries(t *testing.T) {
	e := newEnv(t)
	seedShop(t, e.db)
	payload := []byte(checkoutEvent("evt_1", "cs_1", "pi_1", 5000, `{"client_id":"7"}`))

	_, err := e.uc.Execute(context.Background(), payload, "")
	var ae httperr.AuthenticationError
	require.ErrorAs(t, err, &ae)

	_, err = e.uc.Execute(context.Background(), payload, stripe.SignatureHeader(payload, "whsec_wrong", time.Now()))
	require.ErrorAs(t, err, &ae)

	assert.Empty(t, payments(t, e.db))
}

// ------------------------------------------------------
// dedup / archive
// ------------------------------------------------------

type fakeDedup struct {
	mu      sync.Mutex
	seen    map[string]bool
	failing bool
}

func (f *fakeDedup) Seen(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return false, errors.New("redis down")
	}
	return f.seen[id], nil
}

func (f *fakeDedup) Remember(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("redis down")
	}
	f.seen[id] = true
	return nil
}

type fakeArchive struct {
	ids []string
	err error
}

func (f *fakeArchive) Archive(_ context.Context, ev domain.Event) error {
	f.ids = append(f.ids, ev.ID)
	return f.err
}

func TestDedupSkipsProcessedEvents(t *testing.T) {
	dedup := &fakeDedup{seen: map[string]bool{}}
	e := newEnv(t, WithDeduper(dedup))
	seedShop(t, e.db)

	intent := "pi_d"
	require.NoError(t, e.db.Create(&models.Payment{ClientID: 7, AmountInCents: 100, Status: "pending", StripePaymentIntentID: &intent}).Error)

	res, err := e.deliver(t, intentEvent("evt_d", domain.KindPaymentSucceeded, intent))
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.True(t, dedup.seen["evt_d"])

	// a later failure under the same event id must not be applied
	res, err = e.deliver(t, intentEvent("evt_d", domain.KindPaymentFailed, intent))
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, "completed", payments(t, e.db)[0].Status)
}

func TestDedupFailureFailsOpen(t *testing.T) {
	e := newEnv(t, WithDeduper(&fakeDedup{seen: map[string]bool{}, failing: true}))
	seedShop(t, e.db)

	_, err := e.deliver(t, checkoutEvent("evt_1", "cs_1", "pi_1", 5000, `{"client_id":"7"}`))
	require.NoError(t, err)
	assert.Len(t, payments(t, e.db), 1)
}

func TestArchiveFailureDoesNotFailDelivery(t *testing.T) {
	archive := &fakeArchive{err: errors.New("s3 down")}
	e := newEnv(t, WithArchiver(archive))
	seedShop(t, e.db)

	_, err := e.deliver(t, checkoutEvent("evt_a", "cs_a", "pi_a", 5000, `{"client_id":"7"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"evt_a"}, archive.ids)
	assert.Len(t, payments(t, e.db), 1)
}
