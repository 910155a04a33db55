package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	BarberID uint    `gorm:"not null;index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
