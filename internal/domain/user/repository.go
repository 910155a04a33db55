package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type UpsertInput struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
	Role        string
}

type Repository interface {
	// UpsertUser inserts or refreshes the user identified by OpenID.
	UpsertUser(ctx context.Context, in UpsertInput) (*models.User, error)

	// GetUser returns nil, nil when no row matches.
	GetUser(ctx context.Context, id uint) (*models.User, error)
}
