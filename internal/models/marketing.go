package models

import "time"

type Campaign struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name                  string     `gorm:"size:255;not null" json:"name"`
	Description           string     `gorm:"type:text" json:"description"`
	Type                  string     `gorm:"size:20;not null" json:"type"`
	DiscountPercentage    *int       `json:"discount_percentage"`
	DiscountAmountInCents *int64     `json:"discount_amount_in_cents"`
	StartDate             time.Time  `gorm:"not null" json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	IsActive              bool       `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Coupon struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	CampaignID *uint     `json:"campaign_id"`
	Campaign   *Campaign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	DiscountPercentage    *int       `json:"discount_percentage"`
	DiscountAmountInCents *int64     `json:"discount_amount_in_cents"`
	MaxUses               *int       `json:"max_uses"`
	CurrentUses           int        `gorm:"not null;default:0" json:"current_uses"`
	ExpiresAt             *time.Time `json:"expires_at"`
	IsActive              bool       `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WhatsappMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CampaignID *uint     `json:"campaign_id"`
	Campaign   *Campaign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Message string     `gorm:"type:text;not null" json:"message"`
	Status  string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	SentAt  *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageTemplate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Type     string `gorm:"size:30;not null" json:"type"`
	Content  string `gorm:"type:text;not null" json:"content"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
