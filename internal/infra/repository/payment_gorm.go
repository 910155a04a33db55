package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// --------------------------------------------------
// Reconciliation
// --------------------------------------------------

func (r *PaymentGormRepository) RecordCheckoutCompleted(
	ctx context.Context,
	rec domain.CheckoutRecord,
) (*models.Payment, domain.Outcome, error) {

	p, outcome, err := r.recordCheckout(ctx, rec)
	if err != nil && httperr.IsUniqueViolation(err) {
		// a concurrent delivery inserted the row first; the retry sees it
		p, outcome, err = r.recordCheckout(ctx, rec)
	}
	return p, outcome, err
}

func (r *PaymentGormRepository) recordCheckout(
	ctx context.Context,
	rec domain.CheckoutRecord,
) (*models.Payment, domain.Outcome, error) {

	var (
		out     models.Payment
		outcome domain.Outcome
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("stripe_session_id = ?", rec.SessionID).First(&out).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = newCompletedPayment(rec)
			outcome = domain.OutcomeCreated
			return tx.Create(&out).Error

		case err != nil:
			return err
		}

		if out.Status != string(domain.StatusPending) {
			outcome = domain.OutcomeUnchanged
			return nil
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", out.ID, string(domain.StatusPending)).
			Updates(map[string]any{
				"status":                   string(domain.StatusCompleted),
				"amount_in_cents":          rec.AmountInCents,
				"payment_method":           rec.Method,
				"stripe_payment_intent_id": optionalString(rec.PaymentIntentID),
				"paid_at":                  rec.PaidAt.UTC(),
			})
		if res.Error != nil {
			return res.Error
		}

		outcome = domain.OutcomeCompleted
		if res.RowsAffected == 0 {
			outcome = domain.OutcomeUnchanged
		}
		return tx.First(&out, out.ID).Error
	})
	if err != nil {
		return nil, "", err
	}

	return &out, outcome, nil
}

func newCompletedPayment(rec domain.CheckoutRecord) models.Payment {
	paidAt := rec.PaidAt.UTC()
	session := rec.SessionID

	return models.Payment{
		AppointmentID:         rec.AppointmentID,
		ClientID:              rec.ClientID,
		AmountInCents:         rec.AmountInCents,
		Status:                string(domain.StatusCompleted),
		PaymentMethod:         rec.Method,
		StripePaymentIntentID: optionalString(rec.PaymentIntentID),
		StripeSessionID:       &session,
		PaidAt:                &paidAt,
	}
}

func (r *PaymentGormRepository) UpdateByIntent(
	ctx context.Context,
	intentID string,
	from []domain.Status,
	to domain.Status,
	paidAt *time.Time,
) (int64, error) {

	statuses := make([]string, 0, len(from))
	for _, s := range from {
		statuses = append(statuses, string(s))
	}

	values := map[string]any{"status": string(to)}
	if paidAt != nil {
		values["paid_at"] = paidAt.UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("stripe_payment_intent_id = ? AND status IN ?", intentID, statuses).
		Updates(values)

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Command surface
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	clientID *uint,
) ([]models.Payment, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}

	var payments []models.Payment
	if err := q.
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentGormRepository) GetAppointmentForCheckout(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
