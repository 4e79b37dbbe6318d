package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/internal/queue"
)

// BookingStore is the storage contract of the ledger. Transition must apply
// the update only while the row is still in status from.
type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id uint) (*models.Booking, error)
	HasActive(ctx context.Context, passengerID, driverID uint) (bool, error)
	Transition(ctx context.Context, id uint, from models.BookingStatus, update models.BookingUpdate) (bool, error)
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// BookingLedger creates bookings against the inventory and moves them
// through their lifecycle. Every method takes the acting identity explicitly.
type BookingLedger struct {
	Inventory *TripInventory
	Bookings  BookingStore
	Notifier  Notifier
	Events    EventPublisher
	Now       func() time.Time
}

func NewBookingLedger(inventory *TripInventory, bookings BookingStore, notifier Notifier, events EventPublisher) *BookingLedger {
	return &BookingLedger{
		Inventory: inventory,
		Bookings:  bookings,
		Notifier:  notifier,
		Events:    events,
		Now:       time.Now,
	}
}

// CreateBooking reserves seats and records a pending booking bound to the
// trip's driver. A failed insert gives the seats back.
func (l *BookingLedger) CreateBooking(ctx context.Context, tripID, passengerID uint, seats int) (*models.Booking, error) {
	switch {
	case tripID == 0:
		return nil, domain.InvalidRequest("tripId", "is required")
	case passengerID == 0:
		return nil, domain.InvalidRequest("passengerId", "is required")
	case seats < 1:
		return nil, domain.InvalidRequest("seats", "must be at least 1")
	}

	trip, err := l.Inventory.Trips.Get(ctx, tripID)
	if err != nil {
		return nil, domain.Wrap("load trip", err)
	}
	if trip.DriverID == passengerID {
		return nil, domain.New(domain.CodeSelfBooking, "you cannot book your own trip")
	}

	active, err := l.Bookings.HasActive(ctx, passengerID, trip.DriverID)
	if err != nil {
		return nil, domain.Wrap("check active bookings", err)
	}
	if active {
		return nil, domain.New(domain.CodeDuplicateActiveRequest, "you already have an open booking with this driver")
	}

	if err := l.Inventory.Reserve(ctx, tripID, seats); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		TripID:      tripID,
		PassengerID: passengerID,
		DriverID:    trip.DriverID,
		Seats:       seats,
		Status:      models.BookingStatusPending,
	}
	if err := l.Bookings.Create(ctx, booking); err != nil {
		if relErr := l.releaseSeats(ctx, tripID, 0, seats, "booking insert failed"); relErr != nil {
			return nil, domain.Internal("create booking", errors.Join(err, fmt.Errorf("%d seat(s) not released: %w", seats, relErr)))
		}
		if errors.Is(err, domain.ErrDuplicateActiveRequest) {
			return nil, err
		}
		return nil, domain.Internal("create booking", err)
	}

	notify(ctx, l.Notifier, trip.DriverID, booking.ID, models.NotificationBookingRequested,
		"New booking request",
		fmt.Sprintf("%d seat(s) requested on your trip from %s to %s.", seats, trip.Origin, trip.Destination))
	publishEvent(ctx, l.Events, queue.EventBookingRequested, booking, l.now())
	return booking, nil
}

// Decide accepts or rejects a pending booking. Only the booking's driver may
// decide, and only once.
func (l *BookingLedger) Decide(ctx context.Context, bookingID, actingDriverID uint, action Decision) (*models.Booking, error) {
	if action != DecisionAccept && action != DecisionReject {
		return nil, domain.InvalidRequest("action", "must be accept or reject")
	}

	b, err := l.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if b.DriverID != actingDriverID {
		return nil, domain.Unauthorized("only the driver of this trip can decide on the booking")
	}
	if b.Status != models.BookingStatusPending {
		return nil, alreadyDecided(b.Status)
	}

	now := l.now()
	update := models.BookingUpdate{Status: models.BookingStatusConfirmed}
	if action == DecisionReject {
		update = models.BookingUpdate{Status: models.BookingStatusCancelled, CancelledAt: &now}
	}

	ok, err := l.Bookings.Transition(ctx, b.ID, models.BookingStatusPending, update)
	if err != nil {
		return nil, domain.Internal("update booking status", err)
	}
	if !ok {
		// Lost the race against a concurrent decision.
		return nil, domain.New(domain.CodeAlreadyDecided, "booking has already been decided")
	}
	b.Status = update.Status
	b.CancelledAt = update.CancelledAt

	if action == DecisionAccept {
		notify(ctx, l.Notifier, b.PassengerID, b.ID, models.NotificationBookingConfirmed,
			"Booking accepted",
			"The driver accepted your booking. You can now pay to secure your seats.")
		publishEvent(ctx, l.Events, queue.EventBookingConfirmed, b, now)
		return b, nil
	}

	releaseErr := l.releaseSeats(ctx, b.TripID, b.ID, b.Seats, "booking rejected")
	notify(ctx, l.Notifier, b.PassengerID, b.ID, models.NotificationBookingCancelled,
		"Booking declined",
		"The driver declined your booking request.")
	publishEvent(ctx, l.Events, queue.EventBookingCancelled, b, now)
	if releaseErr != nil {
		return b, domain.Internal("release seats after rejection", releaseErr)
	}
	return b, nil
}

// Cancel lets the passenger withdraw a pending or confirmed booking. The
// seats go back to the trip.
func (l *BookingLedger) Cancel(ctx context.Context, bookingID, passengerID uint) (*models.Booking, error) {
	b, err := l.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if b.PassengerID != passengerID {
		return nil, domain.Unauthorized("only the passenger can cancel this booking")
	}
	if !b.Status.IsActive() {
		return nil, domain.InvalidState(fmt.Sprintf("a %s booking cannot be cancelled", b.Status))
	}

	now := l.now()
	ok, err := l.Bookings.Transition(ctx, b.ID, b.Status, models.BookingUpdate{
		Status:      models.BookingStatusCancelled,
		CancelledAt: &now,
	})
	if err != nil {
		return nil, domain.Internal("update booking status", err)
	}
	if !ok {
		return nil, domain.InvalidState("booking changed while cancelling, reload it")
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now

	releaseErr := l.releaseSeats(ctx, b.TripID, b.ID, b.Seats, "booking cancelled by passenger")
	notify(ctx, l.Notifier, b.DriverID, b.ID, models.NotificationBookingWithdrawn,
		"Booking cancelled",
		"The passenger cancelled their booking.")
	publishEvent(ctx, l.Events, queue.EventBookingCancelled, b, now)
	if releaseErr != nil {
		return b, domain.Internal("release seats after cancellation", releaseErr)
	}
	return b, nil
}

// Complete closes a payment-confirmed booking once the trip took place.
func (l *BookingLedger) Complete(ctx context.Context, bookingID, actingDriverID uint) (*models.Booking, error) {
	b, err := l.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if b.DriverID != actingDriverID {
		return nil, domain.Unauthorized("only the driver of this trip can complete the booking")
	}
	if b.Status != models.BookingStatusPaymentConfirmed {
		return nil, domain.InvalidState("only payment-confirmed bookings can be completed")
	}

	now := l.now()
	ok, err := l.Bookings.Transition(ctx, b.ID, models.BookingStatusPaymentConfirmed, models.BookingUpdate{
		Status:      models.BookingStatusCompleted,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, domain.Internal("update booking status", err)
	}
	if !ok {
		return nil, domain.InvalidState("booking is no longer payment-confirmed")
	}
	b.Status = models.BookingStatusCompleted
	b.CompletedAt = &now

	notify(ctx, l.Notifier, b.PassengerID, b.ID, models.NotificationBookingCompleted,
		"Trip completed",
		"Your trip is complete. Thanks for riding!")
	publishEvent(ctx, l.Events, queue.EventBookingCompleted, b, now)
	return b, nil
}

// releaseSeats runs the compensating release even when the request context
// is already cancelled. A failure leaves seats locked with no booking holding
// them, which only an operator can repair.
func (l *BookingLedger) releaseSeats(ctx context.Context, tripID, bookingID uint, seats int, reason string) error {
	err := l.Inventory.Release(context.WithoutCancel(ctx), tripID, seats)
	if err != nil {
		log.Printf("[BOOKING] FATAL INCONSISTENCY: %s: %d seat(s) on trip %d not released (booking %d): %v; manual reconciliation required",
			reason, seats, tripID, bookingID, err)
	}
	return err
}

func (l *BookingLedger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func alreadyDecided(status models.BookingStatus) error {
	return domain.New(domain.CodeAlreadyDecided, fmt.Sprintf("booking has already been decided (status %s)", status))
}

func notify(ctx context.Context, n Notifier, userID, bookingID uint, kind, title, message string) {
	if n == nil {
		return
	}
	n.Notify(ctx, &models.Notification{
		UserID:    userID,
		BookingID: bookingID,
		Type:      kind,
		Title:     title,
		Message:   message,
	})
}

func publishEvent(ctx context.Context, pub EventPublisher, eventType string, b *models.Booking, at time.Time) {
	if pub == nil {
		return
	}
	ev := queue.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		TripID:      b.TripID,
		PassengerID: b.PassengerID,
		DriverID:    b.DriverID,
		Seats:       b.Seats,
		Status:      string(b.Status),
		OccurredAt:  at.UTC(),
	}
	if err := pub.PublishBookingEvent(ctx, ev); err != nil {
		log.Printf("[EVENTS] failed to publish %s for booking %d: %v", eventType, b.ID, err)
	}
}
