package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// AuditLogQuery: from/to are YYYY-MM-DD days in UTC, both inclusive.
type AuditLogQuery struct {
	Action   string `form:"action"`
	Entity   string `form:"entity"`
	EntityID *uint  `form:"entityId"`
	UserID   *uint  `form:"userId"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

func (q *AuditLogQuery) normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultAuditLimit
	}
	if q.Limit > maxAuditLimit {
		q.Limit = maxAuditLimit
	}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var query AuditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	query.normalize()

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if query.Action != "" {
		q = q.Where("action = ?", query.Action)
	}
	if query.Entity != "" {
		q = q.Where("entity = ?", query.Entity)
	}
	if query.EntityID != nil {
		q = q.Where("entity_id = ?", *query.EntityID)
	}
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}

	if query.From != "" {
		from, err := time.Parse(timezone.DateLayout, query.From)
		if err != nil {
			httperr.InvalidRequest(c, httperr.ErrValidation("from", "expected YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at >= ?", from)
	}
	if query.To != "" {
		to, err := time.Parse(timezone.DateLayout, query.To)
		if err != nil {
			httperr.InvalidRequest(c, httperr.ErrValidation("to", "expected YYYY-MM-DD"))
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").
		Limit(query.Limit).
		Offset((query.Page - 1) * query.Limit).
		Find(&logs).Error
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, query.Page, query.Limit, total)
}
