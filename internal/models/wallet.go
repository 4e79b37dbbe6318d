package models

import (
	"time"
)

// Wallet caches a driver's earnings from completed bookings.
type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Wallet) TableName() string {
	return "wallets"
}
