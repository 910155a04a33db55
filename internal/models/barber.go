package models

import "time"

// Barber rows are never removed: appointments reference them.
type Barber struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Phone       string `gorm:"size:20" json:"phone"`
	Email       string `gorm:"size:320" json:"email"`
	Specialties string `gorm:"type:text" json:"specialties"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BarberSchedule struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	BarberID uint    `gorm:"not null;index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// 0 = Sunday, 6 = Saturday
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
