package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
)

// ======================================================
// PORTS
// ======================================================

type EventVerifier interface {
	Verify(payload []byte, signature string) (domain.Event, error)
}

// EventDeduper remembers event ids that were fully processed.
type EventDeduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Remember(ctx context.Context, eventID string) error
}

type EventArchiver interface {
	Archive(ctx context.Context, ev domain.Event) error
}

// ======================================================
// RESULT
// ======================================================

type ReconcileResult struct {
	EventID   string
	Kind      string
	Test      bool
	Duplicate bool
}

// ======================================================
// USE CASE
// ======================================================

type ReconcilePayment struct {
	repo     domain.Repository
	verifier EventVerifier
	dedup    EventDeduper
	archive  EventArchiver
	audit    *audit.Dispatcher
	now      func() time.Time
}

type ReconcileOption func(*ReconcilePayment)

func WithDeduper(d EventDeduper) ReconcileOption {
	return func(uc *ReconcilePayment) { uc.dedup = d }
}

func WithArchiver(a EventArchiver) ReconcileOption {
	return func(uc *ReconcilePayment) { uc.archive = a }
}

func WithAudit(d *audit.Dispatcher) ReconcileOption {
	return func(uc *ReconcilePayment) { uc.audit = d }
}

func WithClock(now func() time.Time) ReconcileOption {
	return func(uc *ReconcilePayment) { uc.now = now }
}

func NewReconcilePayment(
	repo domain.Repository,
	verifier EventVerifier,
	opts ...ReconcileOption,
) *ReconcilePayment {
	uc := &ReconcilePayment{
		repo:     repo,
		verifier: verifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

// Execute authenticates one webhook delivery and applies it. An
// httperr.AuthenticationError means the delivery must be rejected; any other
// error means it should be retried by the sender.
func (uc *ReconcilePayment) Execute(
	ctx context.Context,
	payload []byte,
	signature string,
) (ReconcileResult, error) {

	log := logger.WithContext(ctx)

	if signature == "" {
		log.Warn("webhook rejected: missing signature")
		return ReconcileResult{}, httperr.AuthenticationError{Reason: "missing signature"}
	}

	ev, err := uc.verifier.Verify(payload, signature)
	if errors.Is(err, domain.ErrInvalidSignature) {
		log.WithError(err).Warn("webhook rejected: invalid signature")
		return ReconcileResult{}, httperr.AuthenticationError{Reason: "invalid signature"}
	}

	res := ReconcileResult{EventID: ev.ID, Kind: ev.Kind}
	log = log.WithFields(logrus.Fields{"event_id": ev.ID, "event_type": ev.Kind})

	if err != nil {
		log.WithError(err).Error("webhook payload undecodable, dropping")
		return res, nil
	}

	if ev.IsTest() {
		log.Info("webhook test event verified")
		res.Test = true
		return res, nil
	}

	if uc.dedup != nil {
		seen, err := uc.dedup.Seen(ctx, ev.ID)
		if err != nil {
			log.WithError(err).Warn("dedup lookup failed, processing anyway")
		}
		if seen {
			log.Info("webhook event already processed")
			res.Duplicate = true
			return res, nil
		}
	}

	if uc.archive != nil {
		if err := uc.archive.Archive(ctx, ev); err != nil {
			log.WithError(err).Warn("webhook archive failed")
		}
	}

	if err := uc.dispatch(ctx, log, ev); err != nil {
		return res, fmt.Errorf("dispatch %s: %w", ev.Kind, err)
	}

	if uc.dedup != nil {
		if err := uc.dedup.Remember(ctx, ev.ID); err != nil {
			log.WithError(err).Warn("dedup record failed")
		}
	}

	return res, nil
}

func (uc *ReconcilePayment) dispatch(ctx context.Context, log *logrus.Entry, ev domain.Event) error {
	switch ev.Kind {
	case domain.KindCheckoutCompleted:
		return uc.checkoutCompleted(ctx, log, ev.Checkout)

	case domain.KindPaymentSucceeded:
		now := uc.now()
		return uc.byIntent(ctx, log, ev,
			[]domain.Status{domain.StatusPending, domain.StatusFailed, domain.StatusCompleted},
			domain.StatusCompleted, &now)

	case domain.KindPaymentFailed:
		return uc.byIntent(ctx, log, ev,
			[]domain.Status{domain.StatusPending},
			domain.StatusFailed, nil)

	case domain.KindChargeRefunded:
		return uc.byIntent(ctx, log, ev,
			[]domain.Status{domain.StatusCompleted},
			domain.StatusRefunded, nil)

	default:
		log.Debug("webhook event ignored")
		return nil
	}
}

// ======================================================
// HANDLERS BY KIND
// ======================================================

func (uc *ReconcilePayment) checkoutCompleted(
	ctx context.Context,
	log *logrus.Entry,
	cs *domain.CheckoutCompleted,
) error {

	if cs == nil || cs.SessionID == "" {
		log.Error("checkout session missing from event, dropping")
		return nil
	}

	clientID, err := parseID(cs.Metadata["client_id"])
	if err != nil {
		log.WithField("client_id", cs.Metadata["client_id"]).
			Error("checkout session without usable client_id, dropping")
		return nil
	}

	var appointmentID *uint
	if raw, ok := cs.Metadata["appointment_id"]; ok && raw != "" {
		id, err := parseID(raw)
		if err != nil {
			log.WithField("appointment_id", raw).Warn("ignoring non-numeric appointment_id")
		} else {
			appointmentID = &id
		}
	}

	p, outcome, err := uc.repo.RecordCheckoutCompleted(ctx, domain.CheckoutRecord{
		ClientID:        clientID,
		AppointmentID:   appointmentID,
		SessionID:       cs.SessionID,
		PaymentIntentID: cs.PaymentIntentID,
		AmountInCents:   cs.AmountTotal,
		Method:          cs.Method(),
		PaidAt:          uc.now(),
	})
	if httperr.IsForeignKeyViolation(err) {
		log.WithError(err).
			WithField("session_id", cs.SessionID).
			Error("checkout references unknown client or appointment, dropping")
		return nil
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"payment_id": p.ID,
		"session_id": cs.SessionID,
		"outcome":    outcome,
	}).Info("checkout session reconciled")

	if outcome != domain.OutcomeUnchanged {
		uc.audit.Dispatch(audit.Event{
			Action:   "payment_completed",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{
				"session_id": cs.SessionID,
				"outcome":    outcome,
			},
		})
	}

	return nil
}

func (uc *ReconcilePayment) byIntent(
	ctx context.Context,
	log *logrus.Entry,
	ev domain.Event,
	from []domain.Status,
	to domain.Status,
	paidAt *time.Time,
) error {

	if ev.Intent == nil || ev.Intent.PaymentIntentID == "" {
		log.Warn("event carries no payment intent, dropping")
		return nil
	}
	intentID := ev.Intent.PaymentIntentID

	n, err := uc.repo.UpdateByIntent(ctx, intentID, from, to, paidAt)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"payment_intent": intentID,
		"rows":           n,
		"status":         to,
	}).Info("payment intent reconciled")

	if n > 0 {
		uc.audit.Dispatch(audit.Event{
			Action: "payment_" + string(to),
			Entity: "payment",
			Metadata: map[string]any{
				"payment_intent": intentID,
				"rows":           n,
			},
		})
	}

	return nil
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}
