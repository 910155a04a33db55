package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/dto"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/timezone"
)

type ListAppointmentsByBarberDay struct {
	repo     domain.Repository
	timezone string
}

func NewListAppointmentsByBarberDay(
	repo domain.Repository,
	tz string,
) *ListAppointmentsByBarberDay {
	return &ListAppointmentsByBarberDay{
		repo:     repo,
		timezone: tz,
	}
}

// Execute lists the barber's appointments on date (YYYY-MM-DD), read as a
// calendar day in the shop timezone.
func (uc *ListAppointmentsByBarberDay) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	start, end, err := timezone.DayBounds(date, timezone.Location(uc.timezone))
	if err != nil {
		return nil, httperr.ErrValidation("date", "date must be formatted as YYYY-MM-DD")
	}

	appointments, err := uc.repo.ListAppointmentsForBarber(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			ClientID:        ap.ClientID,
			BarberID:        ap.BarberID,
			ServiceID:       ap.ServiceID,
			AppointmentDate: ap.AppointmentDate,
			Status:          ap.Status,
			Notes:           ap.Notes,
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
			item.DurationMinutes = ap.Service.DurationMinutes
		}
		out = append(out, item)
	}

	return out, nil
}
