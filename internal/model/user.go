package model

import (
	"time"
)

// User is an account holder. Password holds a bcrypt hash and stays empty for
// accounts created through a federated provider.
type User struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Email         string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password      *string      `json:"-" gorm:"type:varchar(255)"`
	Username      *string      `json:"username" gorm:"type:varchar(20);uniqueIndex"`
	Name          *string      `json:"name" gorm:"type:varchar(255)"`
	Bio           *string      `json:"bio" gorm:"type:text"`
	Location      *string      `json:"location" gorm:"type:varchar(255)"`
	Image         *string      `json:"image" gorm:"type:text"`
	EmailVerified *time.Time   `json:"emailVerified,omitempty"`
	Preferences   *Preferences `json:"preferences,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// HasPassword reports whether the user can sign in with credentials
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// ProfileComplete reports whether the user finished profile setup
func (u *User) ProfileComplete() bool {
	return u.Username != nil && *u.Username != "" && u.Preferences != nil
}

// DisplayName prefers the name, then the username, then the email
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}
