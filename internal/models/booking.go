package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "pending"
	BookingStatusConfirmed        BookingStatus = "confirmed"
	BookingStatusPaid             BookingStatus = "paid"
	BookingStatusPaymentConfirmed BookingStatus = "payment_confirmed"
	BookingStatusCompleted        BookingStatus = "completed"
	BookingStatusCancelled        BookingStatus = "cancelled"
)

// ActiveBookingStatuses count toward the one-open-request-per-driver rule.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// IsActive reports whether the status holds an open request against the driver.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Booking ties a passenger to seats on a trip. DriverID is copied from the
// trip when the booking is created and is never rewritten.
type Booking struct {
	gorm.Model
	TripID           uint          `json:"tripId" gorm:"not null;index"`
	Trip             *Trip         `json:"trip,omitempty" gorm:"foreignKey:TripID"`
	PassengerID      uint          `json:"passengerId" gorm:"not null;index"`
	DriverID         uint          `json:"driverId" gorm:"not null;index"`
	Seats            int           `json:"seats" gorm:"not null"`
	Status           BookingStatus `json:"status" gorm:"not null;default:'pending';index"`
	ConfirmationCode *string       `json:"-" gorm:"column:confirmation_code"`
	PaidAt           *time.Time    `json:"paidAt,omitempty"`
	ConfirmedAt      *time.Time    `json:"confirmedAt,omitempty"`
	CompletedAt      *time.Time    `json:"completedAt,omitempty"`
	CancelledAt      *time.Time    `json:"cancelledAt,omitempty"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// IsParty reports whether userID is the passenger or the driver.
func (b *Booking) IsParty(userID uint) bool {
	return userID != 0 && (b.PassengerID == userID || b.DriverID == userID)
}

// Counterparty returns the other side of the booking for userID.
func (b *Booking) Counterparty(userID uint) uint {
	if userID == b.PassengerID {
		return b.DriverID
	}
	return b.PassengerID
}

// BookingUpdate is the set of columns written by a status transition.
// Nil fields are left untouched.
type BookingUpdate struct {
	Status           BookingStatus
	ConfirmationCode *string
	PaidAt           *time.Time
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
}

// Columns returns the update as a column map for gorm.
func (u BookingUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{"status": u.Status}
	if u.ConfirmationCode != nil {
		cols["confirmation_code"] = *u.ConfirmationCode
	}
	if u.PaidAt != nil {
		cols["paid_at"] = *u.PaidAt
	}
	if u.ConfirmedAt != nil {
		cols["confirmed_at"] = *u.ConfirmedAt
	}
	if u.CompletedAt != nil {
		cols["completed_at"] = *u.CompletedAt
	}
	if u.CancelledAt != nil {
		cols["cancelled_at"] = *u.CancelledAt
	}
	return cols
}
