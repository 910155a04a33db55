package models

import "time"

// Payment mirrors one Stripe transaction. StripeSessionID is unique so that
// redelivered checkout events resolve to the same row.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	AmountInCents int64  `gorm:"not null" json:"amount_in_cents"`
	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentMethod string `gorm:"size:50" json:"payment_method"`

	StripePaymentIntentID *string `gorm:"size:255;index" json:"stripe_payment_intent_id"`
	StripeSessionID       *string `gorm:"size:255;uniqueIndex" json:"stripe_session_id"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
