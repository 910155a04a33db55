package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID        uint
	BarberID        uint
	ServiceID       uint
	AppointmentDate time.Time
	Notes           string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.AppointmentDate.IsZero() {
		return nil, httperr.ErrValidation("appointment_date", "appointment date is required")
	}

	// --------------------------------------------------
	// Referenced rows
	// --------------------------------------------------
	refs := []struct {
		field string
		check func(context.Context, uint) (bool, error)
		id    uint
	}{
		{"client_id", uc.repo.ClientExists, in.ClientID},
		{"barber_id", uc.repo.BarberExists, in.BarberID},
		{"service_id", uc.repo.ServiceExists, in.ServiceID},
	}
	for _, ref := range refs {
		ok, err := ref.check(ctx, ref.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrValidation(ref.field, "referenced record does not exist")
		}
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:        in.ClientID,
		BarberID:        in.BarberID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.AppointmentDate.UTC(),
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
