package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type ListAppointmentsByRange struct {
	repo domain.Repository
}

func NewListAppointmentsByRange(repo domain.Repository) *ListAppointmentsByRange {
	return &ListAppointmentsByRange{repo: repo}
}

// Execute lists appointments newest first. Either bound may be nil; given
// bounds are inclusive.
func (uc *ListAppointmentsByRange) Execute(
	ctx context.Context,
	start *time.Time,
	end *time.Time,
) ([]models.Appointment, error) {

	apps, err := uc.repo.ListAppointmentsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}
