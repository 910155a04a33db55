package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/testutil"
)

type fakeGateway struct {
	got domain.CheckoutSessionInput
	err error
}

func (f *fakeGateway) CreateSession(_ context.Context, in domain.CheckoutSessionInput) (domain.CheckoutSession, error) {
	f.got = in
	if f.err != nil {
		return domain.CheckoutSession{}, f.err
	}
	return domain.CheckoutSession{ID: "cs_new", URL: "https://checkout.stripe.com/c/pay/cs_new"}, nil
}

func TestStartCheckout(t *testing.T) {
	db := testutil.NewDB(t)
	client := testutil.Client(t, db, "Ana")
	barber := testutil.Barber(t, db, "Bruno")
	service := testutil.Service(t, db, "Barba", 3500)
	ap := testutil.Appointment(t, db, client, barber, service, time.Now())

	gw := &fakeGateway{}
	uc := NewStartCheckout(repository.NewPaymentGormRepository(db), gw, nil)

	p, url, err := uc.Execute(context.Background(), ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_new", url)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, int64(3500), p.AmountInCents)

	assert.Equal(t, domain.CheckoutSessionInput{
		AppointmentID: ap.ID,
		ClientID:      client.ID,
		Description:   "Barba",
		AmountInCents: 3500,
	}, gw.got)

	var stored models.Payment
	require.NoError(t, db.Where("stripe_session_id = ?", "cs_new").First(&stored).Error)
	assert.Equal(t, p.ID, stored.ID)

	_, _, err = uc.Execute(context.Background(), 999, nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestStartCheckoutGatewayFailure(t *testing.T) {
	db := testutil.NewDB(t)
	ap := testutil.Appointment(t, db,
		testutil.Client(t, db, "Ana"),
		testutil.Barber(t, db, "Bruno"),
		testutil.Service(t, db, "Corte", 5000),
		time.Now())

	uc := NewStartCheckout(repository.NewPaymentGormRepository(db), &fakeGateway{err: errors.New("stripe down")}, nil)
	_, _, err := uc.Execute(context.Background(), ap.ID, nil)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartCheckoutUnavailable(t *testing.T) {
	uc := NewStartCheckout(nil, nil, nil)
	_, _, err := uc.Execute(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrCheckoutUnavailable)
}
