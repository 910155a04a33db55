package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	ClientID        uint      `json:"client_id"`
	BarberID        uint      `json:"barber_id"`
	ServiceID       uint      `json:"service_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`

	ClientName      string `json:"client_name"`
	ServiceName     string `json:"service_name"`
	DurationMinutes int    `json:"duration_minutes"`
}
