package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns nil, nil for unknown ids.
func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}
