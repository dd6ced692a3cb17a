package model

import "time"

// Trip is a planned journey owned by a user
type Trip struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index:idx_trips_user_end;not null"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null"`
	Destination *string   `json:"destination" gorm:"type:varchar(255)"`
	Description *string   `json:"description" gorm:"type:text"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"index:idx_trips_user_end;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Upcoming reports whether the trip has not ended at now
func (t *Trip) Upcoming(now time.Time) bool {
	return !t.EndDate.Before(now)
}
