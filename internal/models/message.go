package models

import (
	"time"
)

// MaxMessageLength bounds the content of a single message.
const MaxMessageLength = 2000

// Message is a row in the conversation attached to a booking.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookingID  uint      `gorm:"not null;index" json:"bookingId"`
	SenderID   uint      `gorm:"not null" json:"senderId"`
	ReceiverID uint      `gorm:"not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name
func (Message) TableName() string {
	return "messages"
}
