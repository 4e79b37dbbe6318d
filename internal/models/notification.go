package models

import (
	"time"
)

// Notification types emitted by booking and payment transitions.
const (
	NotificationBookingRequested = "booking_requested"
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationBookingWithdrawn = "booking_withdrawn"
	NotificationPaymentReceived  = "payment_received"
	NotificationPaymentConfirmed = "payment_confirmed"
	NotificationBookingCompleted = "booking_completed"
	NotificationNewMessage       = "new_message"
)

// Notification is owned by its recipient and only ever mutated to flip IsRead.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	BookingID uint      `gorm:"index" json:"bookingId"`
	Type      string    `gorm:"not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}
