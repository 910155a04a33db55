package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/audit"
	paymentdomain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	ucPayment "github.com/BruksfildServices01/barbershop-backoffice/internal/usecase/payment"
)

type PaymentHandler struct {
	repo     paymentdomain.Repository
	checkout *ucPayment.StartCheckout
	audit    *audit.Dispatcher
}

func NewPaymentHandler(
	repo paymentdomain.Repository,
	checkout *ucPayment.StartCheckout,
	audit *audit.Dispatcher,
) *PaymentHandler {
	return &PaymentHandler{
		repo:     repo,
		checkout: checkout,
		audit:    audit,
	}
}

// --------- Requests ---------

type CreatePaymentRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	AppointmentID *uint  `json:"appointment_id,omitempty"`
	AmountInCents int64  `json:"amount_in_cents" binding:"min=0"`
	PaymentMethod string `json:"payment_method"`
}

type StartCheckoutRequest struct {
	AppointmentID uint `json:"appointment_id" binding:"required"`
}

// --------- Handlers ---------

// List answers GET /payments, optionally filtered by ?clientId=.
func (h *PaymentHandler) List(c *gin.Context) {
	var clientID *uint
	if raw := c.Query("clientId"); raw != "" {
		id, ok := uintValue(c, "clientId", raw)
		if !ok {
			return
		}
		clientID = &id
	}

	payments, err := h.repo.ListPayments(c.Request.Context(), clientID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, payments)
}

// Create records a payment taken outside the processor (cash, pix at the
// counter). It starts out pending like any other payment.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p := models.Payment{
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		AmountInCents: req.AmountInCents,
		Status:        string(paymentdomain.StatusPending),
		PaymentMethod: req.PaymentMethod,
	}
	if err := h.repo.CreatePayment(c.Request.Context(), &p); err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.InvalidRequest(c, httperr.ErrValidation("client_id", "referenced record does not exist"))
			return
		}
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: &p.ID,
	})

	httpresp.Created(c, p)
}

func (h *PaymentHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p, url, err := h.checkout.Execute(c.Request.Context(), req.AppointmentID, middleware.ActorID(c))
	if errors.Is(err, ucPayment.ErrCheckoutUnavailable) {
		httperr.Unavailable(c, "checkout_unavailable", "Online checkout is not configured.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"payment":      p,
		"checkout_url": url,
	})
}
