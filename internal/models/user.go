package models

import "time"

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleBarber = "barber"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OpenID      string `gorm:"column:open_id;size:64;uniqueIndex;not null" json:"open_id"`
	Name        string `gorm:"type:text" json:"name"`
	Email       string `gorm:"size:320" json:"email"`
	LoginMethod string `gorm:"size:64" json:"login_method"`
	Role        string `gorm:"size:20;not null;default:'user'" json:"role"`

	LastSignedIn time.Time `json:"last_signed_in"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
