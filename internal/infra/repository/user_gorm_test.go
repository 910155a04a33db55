package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

func TestUpsertUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserGormRepository(db, "owner-1")
	ctx := context.Background()

	_, err := repo.UpsertUser(ctx, domain.UpsertInput{Name: "anon"})
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "open_id", ve.Field)

	u, err := repo.UpsertUser(ctx, domain.UpsertInput{OpenID: "u-1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	again, err := repo.UpsertUser(ctx, domain.UpsertInput{OpenID: "u-1", Name: "Ana Souza"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Ana Souza", again.Name)
	assert.Equal(t, "ana@example.com", again.Email)

	owner, err := repo.UpsertUser(ctx, domain.UpsertInput{OpenID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, owner.Role)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
