package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	get          *ucAppointment.GetAppointment
	listByRange  *ucAppointment.ListAppointmentsByRange
	listByBarber *ucAppointment.ListAppointmentsByBarberDay
	location     *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	get *ucAppointment.GetAppointment,
	listByRange *ucAppointment.ListAppointmentsByRange,
	listByBarber *ucAppointment.ListAppointmentsByBarberDay,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		get:          get,
		listByRange:  listByRange,
		listByBarber: listByBarber,
		location:     timezone.Location(tz),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint      `json:"client_id" binding:"required"`
	BarberID        uint      `json:"barber_id" binding:"required"`
	ServiceID       uint      `json:"service_id" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes  *string `json:"notes,omitempty"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:        req.ClientID,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		ActorID:         middleware.ActorID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:      id,
		Status:  req.Status,
		Notes:   req.Notes,
		ActorID: middleware.ActorID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if ap == nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	start, err := timeBound(c.Query("startDate"), h.location, false)
	if err != nil {
		httperr.InvalidRequest(c, httperr.ErrValidation("startDate", "expected RFC 3339 or YYYY-MM-DD"))
		return
	}
	end, err := timeBound(c.Query("endDate"), h.location, true)
	if err != nil {
		httperr.InvalidRequest(c, httperr.ErrValidation("endDate", "expected RFC 3339 or YYYY-MM-DD"))
		return
	}

	apps, err := h.listByRange.Execute(c.Request.Context(), start, end)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListByBarber(c *gin.Context) {
	barberID, ok := uintValue(c, "barberId", c.Query("barberId"))
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.InvalidRequest(c, httperr.ErrValidation("date", "date is required"))
		return
	}

	apps, err := h.listByBarber.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}
