// Package queue defines the booking events exchanged over the broker and
// the publisher and consumer that carry them.
package queue

import (
	"time"
)

// BookingEventsQueue is the durable queue every booking transition lands in.
const BookingEventsQueue = "booking.events"

// Event types, one per booking transition.
const (
	EventBookingRequested        = "booking.requested"
	EventBookingConfirmed        = "booking.confirmed"
	EventBookingCancelled        = "booking.cancelled"
	EventBookingPaid             = "booking.paid"
	EventBookingPaymentConfirmed = "booking.payment_confirmed"
	EventBookingCompleted        = "booking.completed"
)

// BookingEvent carries enough of the booking for consumers to act without a
// lookup. It never contains the confirmation code.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   uint      `json:"booking_id"`
	TripID      uint      `json:"trip_id"`
	PassengerID uint      `json:"passenger_id"`
	DriverID    uint      `json:"driver_id"`
	Seats       int       `json:"seats"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
