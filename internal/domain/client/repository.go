package client

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// DeleteResult tells whether a client row was removed or only deactivated
// because history still references it.
type DeleteResult struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}

type Repository interface {
	ListClients(ctx context.Context) ([]models.Client, error)

	// GetClient returns nil, nil when no row matches.
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, id uint, fields map[string]any) error
	DeleteClient(ctx context.Context, id uint) (DeleteResult, error)

	// ListInactive returns active clients whose last visit is at or before
	// cutoff. Clients that never visited are not included.
	ListInactive(ctx context.Context, cutoff time.Time) ([]models.Client, error)
}

// InactiveCutoff is the instant before which a last visit counts as inactive.
func InactiveCutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
