package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string `gorm:"size:255;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	PriceInCents    int64  `gorm:"not null" json:"price_in_cents"`
	IsActive        bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
