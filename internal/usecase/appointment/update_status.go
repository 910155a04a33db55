package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies next through the transition table. Re-applying the current
// status returns the appointment untouched.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	id uint,
	next domain.Status,
	actorID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	from := domain.Status(ap.Status)

	changed, err := domain.Transition(ap, next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.SaveTransition(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(next),
		},
	})

	return ap, nil
}
