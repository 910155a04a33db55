package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	PriceInCents    int64  `json:"price_in_cents" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,min=1"`
	PriceInCents    *int64  `json:"price_in_cents,omitempty" binding:"omitempty,min=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	service := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceInCents:    req.PriceInCents,
		IsActive:        true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceInCents != nil {
		service.PriceInCents = *req.PriceInCents
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, service)
}

// Delete deactivates the service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(service).
		Update("is_active", false).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": false, "deactivated": true})
}

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	var service models.Service
	err := h.db.WithContext(c.Request.Context()).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return &service, true
}
