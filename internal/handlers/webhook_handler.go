package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
	ucPayment "github.com/BruksfildServices01/barbershop-backoffice/internal/usecase/payment"
)

const maxWebhookBody = 256 << 10

type PaymentReconciler interface {
	Execute(ctx context.Context, payload []byte, signature string) (ucPayment.ReconcileResult, error)
}

type WebhookHandler struct {
	reconciler PaymentReconciler
}

func NewWebhookHandler(reconciler PaymentReconciler) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler}
}

// Stripe answers POST /webhooks/stripe. The body must be read raw: the
// signature covers the exact bytes.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.WithContext(c.Request.Context()).
				WithField("limit", tooLarge.Limit).
				Warn("webhook body too large")
			httperr.Write(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Webhook body exceeds the size limit.")
			return
		}
		httperr.BadRequest(c, "invalid_payload", "Body unreadable.")
		return
	}

	res, err := h.reconciler.Execute(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))

	var authErr httperr.AuthenticationError
	switch {
	case errors.As(err, &authErr):
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	case err != nil:
		logger.WithContext(c.Request.Context()).
			WithError(err).
			WithField("event_id", res.EventID).
			Error("webhook processing failed")
		httperr.Internal(c, "webhook_processing_failed", "Webhook processing failed.")
		return
	}

	if res.Test {
		c.JSON(http.StatusOK, gin.H{"verified": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
