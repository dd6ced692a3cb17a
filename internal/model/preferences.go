package model

import (
	"time"

	"gorm.io/datatypes"
)

// Preferences holds a user's travel preferences, one row per user
type Preferences struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	UserID       uint                        `json:"userId" gorm:"uniqueIndex;not null"`
	TravelStyles datatypes.JSONSlice[string] `json:"travelStyles" gorm:"type:jsonb;not null"`
	Budget       *string                     `json:"budget" gorm:"type:varchar(50)"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// TableName pins the table name used by the migrations
func (Preferences) TableName() string {
	return "preferences"
}
