package models

import "time"

type Setting struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"type:text;not null" json:"value"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
