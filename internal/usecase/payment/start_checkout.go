package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// ErrCheckoutUnavailable is returned when no processor key is configured.
var ErrCheckoutUnavailable = errors.New("checkout unavailable")

type CheckoutGateway interface {
	CreateSession(ctx context.Context, in domain.CheckoutSessionInput) (domain.CheckoutSession, error)
}

type StartCheckout struct {
	repo    domain.Repository
	gateway CheckoutGateway
	audit   *audit.Dispatcher
}

// NewStartCheckout accepts a nil gateway; Execute then fails with
// ErrCheckoutUnavailable.
func NewStartCheckout(
	repo domain.Repository,
	gateway CheckoutGateway,
	audit *audit.Dispatcher,
) *StartCheckout {
	return &StartCheckout{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute opens a checkout session for the appointment's service and records
// a pending payment keyed on the session id.
func (uc *StartCheckout) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID *uint,
) (*models.Payment, string, error) {

	if uc.gateway == nil {
		return nil, "", ErrCheckoutUnavailable
	}

	ap, err := uc.repo.GetAppointmentForCheckout(ctx, appointmentID)
	if err != nil {
		return nil, "", err
	}
	if ap == nil {
		return nil, "", httperr.ErrBusiness("appointment_not_found")
	}
	if ap.Service == nil {
		return nil, "", httperr.ErrBusiness("service_not_found")
	}

	session, err := uc.gateway.CreateSession(ctx, domain.CheckoutSessionInput{
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		Description:   ap.Service.Name,
		AmountInCents: ap.Service.PriceInCents,
	})
	if err != nil {
		return nil, "", err
	}

	sessionID := session.ID
	p := &models.Payment{
		AppointmentID:   &ap.ID,
		ClientID:        ap.ClientID,
		AmountInCents:   ap.Service.PriceInCents,
		Status:          string(domain.StatusPending),
		StripeSessionID: &sessionID,
	}
	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "checkout_started",
		Entity:   "payment",
		EntityID: &p.ID,
	})

	return p, session.URL, nil
}
