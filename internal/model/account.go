package model

import "time"

// Account links a federated identity (provider + provider account id) to a user
type Account struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"userId" gorm:"index;not null"`
	Provider          string    `json:"provider" gorm:"type:varchar(50);uniqueIndex:idx_accounts_provider_account;not null"`
	ProviderAccountID string    `json:"providerAccountId" gorm:"type:varchar(255);uniqueIndex:idx_accounts_provider_account;not null"`
	CreatedAt         time.Time `json:"createdAt"`
}
