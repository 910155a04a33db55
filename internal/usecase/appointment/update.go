package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type UpdateAppointmentInput struct {
	ID     uint
	Status *string
	Notes  *string

	ActorID *uint
}

// UpdateAppointment overwrites notes and routes status changes through
// UpdateAppointmentStatus.
type UpdateAppointment struct {
	repo         domain.Repository
	updateStatus *UpdateAppointmentStatus
}

func NewUpdateAppointment(
	repo domain.Repository,
	updateStatus *UpdateAppointmentStatus,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:         repo,
		updateStatus: updateStatus,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var next domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		next = st
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.Status != nil {
		// reject before touching notes so a bad transition leaves the row intact
		if err := domain.CanTransition(domain.Status(ap.Status), next); err != nil {
			return nil, err
		}
	}

	if in.Notes != nil {
		if err := uc.repo.UpdateNotes(ctx, in.ID, *in.Notes); err != nil {
			return nil, err
		}
	}

	if in.Status != nil {
		if _, err := uc.updateStatus.Execute(ctx, in.ID, next, in.ActorID); err != nil {
			return nil, err
		}
	}

	return uc.repo.GetAppointment(ctx, in.ID)
}
