package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	clientdomain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

type ClientHandler struct {
	repo  clientdomain.Repository
	audit *audit.Dispatcher
}

func NewClientHandler(repo clientdomain.Repository, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes    *string `json:"notes,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	client, err := h.repo.GetClient(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if client == nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}
	httpresp.OK(c, client)
}

// ListInactive answers GET /clients/inactive?days=N.
func (h *ClientHandler) ListInactive(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 0 {
		httperr.InvalidRequest(c, httperr.ErrValidation("days", "must be a non-negative integer"))
		return
	}

	cutoff := clientdomain.InactiveCutoff(time.Now(), days)
	clients, err := h.repo.ListInactive(c.Request.Context(), cutoff)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, clients)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	client := models.Client{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:    req.Notes,
		IsActive: true,
	}
	if err := h.repo.CreateClient(c.Request.Context(), &client); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.repo.GetClient(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if existing == nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if err := h.repo.UpdateClient(ctx, id, fields); err != nil {
		httperr.FromError(c, err)
		return
	}

	updated, err := h.repo.GetClient(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	existing, err := h.repo.GetClient(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if existing == nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	res, err := h.repo.DeleteClient(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	action := "client_deleted"
	if res.Deactivated {
		action = "client_deactivated"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   action,
		Entity:   "client",
		EntityID: &id,
	})

	httpresp.OK(c, res)
}
