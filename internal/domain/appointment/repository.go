package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type Repository interface {
	// -------- References --------
	ClientExists(ctx context.Context, id uint) (bool, error)
	BarberExists(ctx context.Context, id uint) (bool, error)
	ServiceExists(ctx context.Context, id uint) (bool, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// GetAppointment returns nil, nil when no row matches.
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateNotes(ctx context.Context, id uint, notes string) error

	// SaveTransition persists ap.Status only if the stored status still equals
	// from. A completed visit also bumps the client's stats in the same
	// transaction. Returns appointment_conflict when the row moved meanwhile.
	SaveTransition(ctx context.Context, ap *models.Appointment, from Status) error

	// -------- Queries --------
	ListAppointmentsInRange(ctx context.Context, start, end *time.Time) ([]models.Appointment, error)

	ListAppointmentsForBarber(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
