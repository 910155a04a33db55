package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

func TestListInactive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewClientGormRepository(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	visit := func(name string, daysAgo int, active bool) {
		last := now.AddDate(0, 0, -daysAgo)
		c := testutil.Client(t, db, name)
		require.NoError(t, db.Model(c).Updates(map[string]any{"last_visit": last, "is_active": active}).Error)
	}
	visit("old", 40, true)
	visit("recent", 10, true)
	visit("old-but-inactive", 60, false)
	testutil.Client(t, db, "never")

	got, err := repo.ListInactive(context.Background(), domain.InactiveCutoff(now, 30))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].Name)
}

func TestDeleteClientPolicy(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewClientGormRepository(db)

	lonely := testutil.Client(t, db, "lonely")
	res, err := repo.DeleteClient(context.Background(), lonely.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteResult{Deleted: true}, res)

	got, err := repo.GetClient(context.Background(), lonely.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	regular := testutil.Client(t, db, "regular")
	testutil.Appointment(t, db, regular, testutil.Barber(t, db, "B"), testutil.Service(t, db, "S", 100), time.Now())

	res, err = repo.DeleteClient(context.Background(), regular.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteResult{Deactivated: true}, res)

	got, err = repo.GetClient(context.Background(), regular.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)

	payer := testutil.Client(t, db, "payer")
	require.NoError(t, db.Create(&models.Payment{ClientID: payer.ID, AmountInCents: 100, Status: "completed"}).Error)
	res, err = repo.DeleteClient(context.Background(), payer.ID)
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
}
