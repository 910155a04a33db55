package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Specialties string `json:"specialties"`
	UserID      *uint  `json:"user_id,omitempty"`
}

type UpdateBarberRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Specialties *string `json:"specialties,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ScheduleDay struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type ReplaceSchedulesRequest struct {
	Days []ScheduleDay `json:"days" binding:"required,dive"`
}

// --------- Handlers ---------

// List returns active barbers only.
func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, barber)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	barber := models.Barber{
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Specialties: req.Specialties,
		IsActive:    true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		barber.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		barber.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Specialties != nil {
		barber.Specialties = *req.Specialties
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, barber)
}

// Delete deactivates the barber; appointment history keeps pointing at it.
func (h *BarberHandler) Delete(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("is_active", false).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": false, "deactivated": true})
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *BarberHandler) GetSchedules(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	var schedules []models.BarberSchedule
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barber.ID).
		Order("day_of_week ASC").
		Find(&schedules).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, schedules)
}

// ReplaceSchedules swaps the barber's whole weekly schedule.
func (h *BarberHandler) ReplaceSchedules(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	var req ReplaceSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	toCreate := make([]models.BarberSchedule, 0, len(req.Days))
	for i, d := range req.Days {
		// HH:MM compares correctly as a string
		if d.EndTime <= d.StartTime {
			httperr.InvalidRequest(c, httperr.ErrValidation(
				fmt.Sprintf("days[%d].end_time", i), "must be after start_time"))
			return
		}

		active := true
		if d.IsActive != nil {
			active = *d.IsActive
		}
		toCreate = append(toCreate, models.BarberSchedule{
			BarberID:  barber.ID,
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  active,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barber.ID).
			Delete(&models.BarberSchedule{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		if err := tx.Create(&toCreate).Error; err != nil {
			return err
		}
		// gorm skips zero-valued fields that carry a default on insert
		for _, s := range toCreate {
			if !s.IsActive {
				if err := tx.Model(&models.BarberSchedule{}).
					Where("id = ?", s.ID).
					Update("is_active", false).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, toCreate)
}

func (h *BarberHandler) load(c *gin.Context) (*models.Barber, bool) {
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	var barber models.Barber
	err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return nil, false
	}
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return &barber, true
}
