package stripe

import (
	"context"
	"fmt"
	"strconv"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/config"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
)

// Checkout opens hosted Stripe Checkout sessions.
type Checkout struct {
	client     *session.Client
	currency   string
	successURL string
	cancelURL  string
}

func NewCheckout(cfg config.StripeConfig) *Checkout {
	return &Checkout{
		client: &session.Client{
			B:   stripeapi.GetBackend(stripeapi.APIBackend),
			Key: cfg.SecretKey,
		},
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

func (c *Checkout) CreateSession(
	ctx context.Context,
	in payment.CheckoutSessionInput,
) (payment.CheckoutSession, error) {

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(c.successURL),
		CancelURL:  stripeapi.String(c.cancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Quantity: stripeapi.Int64(1),
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(c.currency),
					UnitAmount: stripeapi.Int64(in.AmountInCents),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(in.Description),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("client_id", strconv.FormatUint(uint64(in.ClientID), 10))
	params.AddMetadata("appointment_id", strconv.FormatUint(uint64(in.AppointmentID), 10))

	s, err := c.client.New(params)
	if err != nil {
		return payment.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	return payment.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
