package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	coupondomain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/coupon"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

// MarketingHandler serves campaigns, coupons, WhatsApp messages and message
// templates.
type MarketingHandler struct {
	db      *gorm.DB
	coupons coupondomain.Repository
	audit   *audit.Dispatcher
}

func NewMarketingHandler(
	db *gorm.DB,
	coupons coupondomain.Repository,
	audit *audit.Dispatcher,
) *MarketingHandler {
	return &MarketingHandler{db: db, coupons: coupons, audit: audit}
}

// --------- Requests ---------

type CreateCampaignRequest struct {
	Name                  string     `json:"name" binding:"required"`
	Description           string     `json:"description"`
	Type                  string     `json:"type" binding:"required,oneof=promotional reactivation referral"`
	DiscountPercentage    *int       `json:"discount_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	DiscountAmountInCents *int64     `json:"discount_amount_in_cents,omitempty" binding:"omitempty,min=0"`
	StartDate             time.Time  `json:"start_date" binding:"required"`
	EndDate               *time.Time `json:"end_date,omitempty"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateCouponRequest struct {
	Code                  string     `json:"code" binding:"required,max=50"`
	CampaignID            *uint      `json:"campaign_id,omitempty"`
	DiscountPercentage    *int       `json:"discount_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	DiscountAmountInCents *int64     `json:"discount_amount_in_cents,omitempty" binding:"omitempty,min=0"`
	MaxUses               *int       `json:"max_uses,omitempty" binding:"omitempty,min=1"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
}

type SendWhatsappRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	CampaignID *uint  `json:"campaign_id,omitempty"`
	Message    string `json:"message" binding:"required"`
}

type CreateTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=appointment_reminder reactivation promotional custom"`
	Content string `json:"content" binding:"required"`
}

// ======================================================
// CAMPAIGNS
// ======================================================

func (h *MarketingHandler) ListCampaigns(c *gin.Context) {
	var campaigns []models.Campaign
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, campaigns)
}

func (h *MarketingHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		httperr.InvalidRequest(c, httperr.ErrValidation("end_date", "must not be before start_date"))
		return
	}

	campaign := models.Campaign{
		Name:                  strings.TrimSpace(req.Name),
		Description:           req.Description,
		Type:                  req.Type,
		DiscountPercentage:    req.DiscountPercentage,
		DiscountAmountInCents: req.DiscountAmountInCents,
		StartDate:             req.StartDate.UTC(),
		EndDate:               utcPtr(req.EndDate),
		IsActive:              true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&campaign).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "campaign_created",
		Entity:   "campaign",
		EntityID: &campaign.ID,
	})

	httpresp.Created(c, campaign)
}

func (h *MarketingHandler) UpdateCampaign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var campaign models.Campaign
	err := h.db.WithContext(ctx).First(&campaign, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "campaign_not_found", "Campaign not found.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if req.Name != nil {
		campaign.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(ctx).Save(&campaign).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, campaign)
}

// ======================================================
// COUPONS
// ======================================================

func (h *MarketingHandler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	coupon := models.Coupon{
		Code:                  strings.ToUpper(strings.TrimSpace(req.Code)),
		CampaignID:            req.CampaignID,
		DiscountPercentage:    req.DiscountPercentage,
		DiscountAmountInCents: req.DiscountAmountInCents,
		MaxUses:               req.MaxUses,
		ExpiresAt:             utcPtr(req.ExpiresAt),
		IsActive:              true,
	}

	if err := h.coupons.CreateCoupon(c.Request.Context(), &coupon); err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Write(c, http.StatusConflict, "coupon_code_taken", "Coupon code already exists.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, coupon)
}

func (h *MarketingHandler) GetCoupon(c *gin.Context) {
	coupon, err := h.coupons.GetCoupon(c.Request.Context(), normalizeCode(c.Param("code")))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if coupon == nil {
		httperr.NotFound(c, "coupon_not_found", "Coupon not found.")
		return
	}
	httpresp.OK(c, coupon)
}

func (h *MarketingHandler) RedeemCoupon(c *gin.Context) {
	coupon, err := h.coupons.Redeem(c.Request.Context(), normalizeCode(c.Param("code")), time.Now())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "coupon_redeemed",
		Entity:   "coupon",
		EntityID: &coupon.ID,
	})

	httpresp.OK(c, coupon)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ======================================================
// WHATSAPP
// ======================================================

func (h *MarketingHandler) ListWhatsappMessages(c *gin.Context) {
	var messages []models.WhatsappMessage
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, messages)
}

// SendWhatsappMessage queues the message; delivery is done by whoever drains
// pending rows.
func (h *MarketingHandler) SendWhatsappMessage(c *gin.Context) {
	var req SendWhatsappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	var clients int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("id = ?", req.ClientID).
		Count(&clients).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if clients == 0 {
		httperr.InvalidRequest(c, httperr.ErrValidation("client_id", "referenced record does not exist"))
		return
	}

	msg := models.WhatsappMessage{
		ClientID:   req.ClientID,
		CampaignID: req.CampaignID,
		Message:    req.Message,
		Status:     "pending",
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, msg)
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *MarketingHandler) ListTemplates(c *gin.Context) {
	var templates []models.MessageTemplate
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&templates).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, templates)
}

func (h *MarketingHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	tpl := models.MessageTemplate{
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Content:  req.Content,
		IsActive: true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&tpl).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, tpl)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
