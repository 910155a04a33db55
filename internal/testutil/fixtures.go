package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/models"
)

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func Client(t *testing.T, db *gorm.DB, name string) *models.Client {
	c := &models.Client{Name: name, Phone: "+55 11 90000-0000", IsActive: true}
	mustCreate(t, db, c)
	return c
}

func Barber(t *testing.T, db *gorm.DB, name string) *models.Barber {
	b := &models.Barber{Name: name, IsActive: true}
	mustCreate(t, db, b)
	return b
}

func Service(t *testing.T, db *gorm.DB, name string, priceInCents int64) *models.Service {
	s := &models.Service{Name: name, DurationMinutes: 30, PriceInCents: priceInCents, IsActive: true}
	mustCreate(t, db, s)
	return s
}

func Appointment(
	t *testing.T,
	db *gorm.DB,
	client *models.Client,
	barber *models.Barber,
	service *models.Service,
	at time.Time,
) *models.Appointment {
	ap := &models.Appointment{
		ClientID:        client.ID,
		BarberID:        barber.ID,
		ServiceID:       service.ID,
		AppointmentDate: at.UTC(),
		Status:          "pending",
	}
	mustCreate(t, db, ap)
	return ap
}
