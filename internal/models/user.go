package models

import (
	"time"
)

// User is the local profile of an identity issued by the external provider.
// ID is the provider's numeric subject, so rows are created on first write.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	DisplayName string    `gorm:"column:display_name" json:"displayName"`
	Email       string    `gorm:"column:email" json:"email"`
	PhoneNumber string    `gorm:"column:phone_number" json:"phoneNumber"`
	FCMToken    string    `gorm:"column:fcm_token" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
