package models

import (
	"strings"
	"time"
)

// NotificationPreference controls which notifications are pushed to a device.
// Notification rows are always stored; preferences only gate FCM delivery.
type NotificationPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// General push notification toggle
	PushEnabled bool `gorm:"column:push_enabled;default:true" json:"pushEnabled"`

	BookingAlerts bool `gorm:"column:booking_alerts;default:true" json:"bookingAlerts"`
	PaymentAlerts bool `gorm:"column:payment_alerts;default:true" json:"paymentAlerts"`
	MessageAlerts bool `gorm:"column:message_alerts;default:true" json:"messageAlerts"`
}

// TableName specifies the table name for NotificationPreference
func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultPreferences returns default notification preferences for a new user
func DefaultPreferences(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:        userID,
		PushEnabled:   true,
		BookingAlerts: true,
		PaymentAlerts: true,
		MessageAlerts: true,
	}
}

// AllowsPush reports whether a notification of the given type may be pushed.
func (p *NotificationPreference) AllowsPush(notificationType string) bool {
	if !p.PushEnabled {
		return false
	}
	switch {
	case strings.HasPrefix(notificationType, "payment_"):
		return p.PaymentAlerts
	case notificationType == NotificationNewMessage:
		return p.MessageAlerts
	default:
		return p.BookingAlerts
	}
}
