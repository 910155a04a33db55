package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) ClientExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Client{}, id)
}

func (r *AppointmentGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Barber{}, id)
}

func (r *AppointmentGormRepository) ServiceExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Service{}, id)
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		First(&ap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateNotes(
	ctx context.Context,
	id uint,
	notes string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

func (r *AppointmentGormRepository) SaveTransition(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", ap.ID, string(from)).
			Update("status", ap.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("appointment_conflict")
		}

		if !domain.CountsAsVisit(domain.Status(ap.Status)) {
			return nil
		}

		// last_visit only moves forward
		visit := ap.AppointmentDate.UTC()
		lastVisit := gorm.Expr(
			"CASE WHEN last_visit IS NULL OR last_visit < ? THEN ? ELSE last_visit END",
			visit, visit,
		)

		return tx.Model(&models.Client{}).
			Where("id = ?", ap.ClientID).
			Updates(map[string]any{
				"total_visits": gorm.Expr("total_visits + 1"),
				"last_visit":   lastVisit,
			}).Error
	})
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsInRange(
	ctx context.Context,
	start *time.Time,
	end *time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if start != nil {
		q = q.Where("appointment_date >= ?", start.UTC())
	}
	if end != nil {
		q = q.Where("appointment_date <= ?", end.UTC())
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForBarber(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND appointment_date >= ? AND appointment_date <= ?",
			barberID,
			start.UTC(),
			end.UTC(),
		).
		Order("appointment_date ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
