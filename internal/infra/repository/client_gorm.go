package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) UpdateClient(
	ctx context.Context,
	id uint,
	fields map[string]any,
) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteClient removes the row only when no appointment or payment points at
// it; otherwise the client is deactivated.
func (r *ClientGormRepository) DeleteClient(
	ctx context.Context,
	id uint,
) (domain.DeleteResult, error) {

	var result domain.DeleteResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Appointment{}).
			Where("client_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}

		if refs == 0 {
			if err := tx.Model(&models.Payment{}).
				Where("client_id = ?", id).
				Count(&refs).Error; err != nil {
				return err
			}
		}

		if refs > 0 {
			result.Deactivated = true
			return tx.Model(&models.Client{}).
				Where("id = ?", id).
				Update("is_active", false).Error
		}

		if err := tx.Where("client_id = ?", id).
			Delete(&models.WhatsappMessage{}).Error; err != nil {
			return err
		}

		result.Deleted = true
		return tx.Delete(&models.Client{}, id).Error
	})

	return result, err
}

func (r *ClientGormRepository) ListInactive(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND last_visit <= ?", true, cutoff.UTC()).
		Order("last_visit ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
