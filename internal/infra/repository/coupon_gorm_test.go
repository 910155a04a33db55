package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

func TestRedeemNeverExceedsMaxUses(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCouponGormRepository(db)
	ctx := context.Background()

	maxUses := 3
	require.NoError(t, repo.CreateCoupon(ctx, &models.Coupon{Code: "VOLTA10", MaxUses: &maxUses, IsActive: true}))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		refused int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Redeem(ctx, "VOLTA10", time.Now())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if httperr.IsBusiness(err, "coupon_exhausted") {
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, 7, refused)

	c, err := repo.GetCoupon(ctx, "VOLTA10")
	require.NoError(t, err)
	assert.Equal(t, 3, c.CurrentUses)
}

func TestRedeemRejections(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCouponGormRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	require.NoError(t, repo.CreateCoupon(ctx, &models.Coupon{Code: "OLD", ExpiresAt: &past, IsActive: true}))
	require.NoError(t, repo.CreateCoupon(ctx, &models.Coupon{Code: "OFF", IsActive: true}))
	require.NoError(t, db.Model(&models.Coupon{}).Where("code = ?", "OFF").Update("is_active", false).Error)

	_, err := repo.Redeem(ctx, "NOPE", now)
	assert.True(t, httperr.IsBusiness(err, "coupon_not_found"))

	_, err = repo.Redeem(ctx, "OLD", now)
	assert.True(t, httperr.IsBusiness(err, "coupon_expired"))

	_, err = repo.Redeem(ctx, "OFF", now)
	assert.True(t, httperr.IsBusiness(err, "coupon_inactive"))

	future := now.Add(time.Hour)
	require.NoError(t, repo.CreateCoupon(ctx, &models.Coupon{Code: "OPEN", ExpiresAt: &future, IsActive: true}))
	c, err := repo.Redeem(ctx, "OPEN", now)
	require.NoError(t, err)
	assert.Equal(t, 1, c.CurrentUses)
}

func TestRedeemReportsConflictWhenCouponReopens(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCouponGormRepository(db)
	ctx := context.Background()

	maxUses := 1
	require.NoError(t, repo.CreateCoupon(ctx, &models.Coupon{Code: "ULTIMO", MaxUses: &maxUses, IsActive: true}))
	_, err := repo.Redeem(ctx, "ULTIMO", time.Now())
	require.NoError(t, err)

	// an admin raises the limit between the refused update and the re-read
	reopened := false
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:reopen_coupon", func(tx *gorm.DB) {
		if reopened || tx.Statement.Table != "coupons" || tx.RowsAffected != 0 {
			return
		}
		reopened = true
		tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE coupons SET max_uses = 10 WHERE code = ?", "ULTIMO")
	}))

	_, err = repo.Redeem(ctx, "ULTIMO", time.Now())
	require.Error(t, err)
	assert.True(t, reopened)
	assert.True(t, httperr.IsBusiness(err, "coupon_conflict"))

	c, err := repo.Redeem(ctx, "ULTIMO", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, c.CurrentUses)
}
