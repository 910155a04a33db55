package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/coupon"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type CouponGormRepository struct {
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{db: db}
}

func (r *CouponGormRepository) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CouponGormRepository) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Redeem relies on a single conditional UPDATE so concurrent redemptions
// cannot overshoot max_uses.
func (r *CouponGormRepository) Redeem(
	ctx context.Context,
	code string,
	now time.Time,
) (*models.Coupon, error) {

	now = now.UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ? AND is_active = ?", code, true).
		Where("(max_uses IS NULL OR current_uses < max_uses)").
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Update("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return nil, res.Error
	}

	c, err := r.GetCoupon(ctx, code)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		if reason := domain.RejectReason(c, now); reason != nil {
			return nil, reason
		}
		// state changed between the update and the read
		return nil, httperr.ErrBusiness("coupon_conflict")
	}

	return c, nil
}

// Compile-time check
var _ domain.Repository = (*CouponGormRepository)(nil)
