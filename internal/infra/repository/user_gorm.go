package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type UserGormRepository struct {
	db          *gorm.DB
	ownerOpenID string
}

func NewUserGormRepository(db *gorm.DB, ownerOpenID string) *UserGormRepository {
	return &UserGormRepository{db: db, ownerOpenID: ownerOpenID}
}

func (r *UserGormRepository) UpsertUser(
	ctx context.Context,
	in domain.UpsertInput,
) (*models.User, error) {

	if in.OpenID == "" {
		return nil, httperr.ErrValidation("open_id", "user open id is required for upsert")
	}

	role := in.Role
	if in.OpenID == r.ownerOpenID {
		role = models.RoleAdmin
	}

	u := models.User{
		OpenID:       in.OpenID,
		Name:         in.Name,
		Email:        in.Email,
		LoginMethod:  in.LoginMethod,
		Role:         role,
		LastSignedIn: time.Now().UTC(),
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	updates := []string{"last_signed_in", "updated_at"}
	if in.Name != "" {
		updates = append(updates, "name")
	}
	if in.Email != "" {
		updates = append(updates, "email")
	}
	if in.LoginMethod != "" {
		updates = append(updates, "login_method")
	}
	if role != "" {
		updates = append(updates, "role")
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "open_id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&u).Error; err != nil {
		return nil, err
	}

	var out models.User
	if err := r.db.WithContext(ctx).
		Where("open_id = ?", in.OpenID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
