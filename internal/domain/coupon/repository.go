package coupon

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type Repository interface {
	CreateCoupon(ctx context.Context, c *models.Coupon) error

	// GetCoupon returns nil, nil when no row matches.
	GetCoupon(ctx context.Context, code string) (*models.Coupon, error)

	// Redeem consumes one use of code, never letting current_uses pass
	// max_uses.
	Redeem(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
}

// RejectReason explains why c cannot be redeemed at now. Nil c means the
// code does not exist.
func RejectReason(c *models.Coupon, now time.Time) error {
	switch {
	case c == nil:
		return httperr.ErrBusiness("coupon_not_found")
	case !c.IsActive:
		return httperr.ErrBusiness("coupon_inactive")
	case c.ExpiresAt != nil && !c.ExpiresAt.After(now):
		return httperr.ErrBusiness("coupon_expired")
	case c.MaxUses != nil && c.CurrentUses >= *c.MaxUses:
		return httperr.ErrBusiness("coupon_exhausted")
	}
	return nil
}
