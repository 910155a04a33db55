package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type SettingHandler struct {
	db *gorm.DB
}

func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

type UpsertSettingRequest struct {
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description,omitempty"`
}

func (h *SettingHandler) Get(c *gin.Context) {
	var setting models.Setting
	err := h.db.WithContext(c.Request.Context()).
		Where("key = ?", c.Param("key")).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "setting_not_found", "Setting not found.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, setting)
}

func (h *SettingHandler) Upsert(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	key := c.Param("key")
	setting := models.Setting{Key: key, Value: req.Value}

	updates := []string{"value", "updated_at"}
	if req.Description != nil {
		setting.Description = *req.Description
		updates = append(updates, "description")
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&setting).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var stored models.Setting
	if err := h.db.WithContext(ctx).Where("key = ?", key).First(&stored).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, stored)
}
