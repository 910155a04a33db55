package models

import "time"

// Client is identified by phone; visit stats move when an appointment completes.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Email string `gorm:"size:320" json:"email"`
	Notes string `gorm:"type:text" json:"notes"`

	LastVisit   *time.Time `json:"last_visit"`
	TotalVisits int        `gorm:"not null;default:0" json:"total_visits"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
