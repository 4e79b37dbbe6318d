package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/internal/queue"
	"github.com/chachabrian/covoit-backend/pkg/utils"
)

// maxCodeAttempts bounds how often Initiate redraws a code that collides
// with another outstanding one.
const maxCodeAttempts = 5

// PaymentHandshake issues the confirmation code to the passenger and lets
// the driver prove the hand-off by entering it.
type PaymentHandshake struct {
	Bookings BookingStore
	Notifier Notifier
	Events   EventPublisher
	NewCode  func() (string, error)
	Now      func() time.Time
}

func NewPaymentHandshake(bookings BookingStore, notifier Notifier, events EventPublisher) *PaymentHandshake {
	return &PaymentHandshake{
		Bookings: bookings,
		Notifier: notifier,
		Events:   events,
		NewCode:  utils.GenerateConfirmationCode,
		Now:      time.Now,
	}
}

// Initiate marks a confirmed booking as paid and returns its code. The code
// is disclosed only here, to the paying passenger.
func (p *PaymentHandshake) Initiate(ctx context.Context, bookingID, payerID uint) (string, error) {
	b, err := p.Bookings.Get(ctx, bookingID)
	if err != nil {
		return "", domain.Wrap("load booking", err)
	}
	if b.PassengerID != payerID {
		return "", domain.Unauthorized("only the passenger can pay for this booking")
	}
	if b.Status != models.BookingStatusConfirmed {
		return "", domain.InvalidState("payment can only start on a confirmed booking")
	}

	now := p.now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := p.NewCode()
		if err != nil {
			return "", domain.Internal("generate confirmation code", err)
		}

		ok, err := p.Bookings.Transition(ctx, b.ID, models.BookingStatusConfirmed, models.BookingUpdate{
			Status:           models.BookingStatusPaid,
			ConfirmationCode: &code,
			PaidAt:           &now,
		})
		if errors.Is(err, domain.ErrCodeInUse) {
			continue
		}
		if err != nil {
			return "", domain.Internal("store confirmation code", err)
		}
		if !ok {
			return "", domain.InvalidState("booking is no longer confirmed")
		}

		b.Status = models.BookingStatusPaid
		b.ConfirmationCode = &code
		b.PaidAt = &now
		notify(ctx, p.Notifier, b.DriverID, b.ID, models.NotificationPaymentReceived,
			"Payment received",
			"The passenger has paid. Ask them for their confirmation code at pick-up.")
		publishEvent(ctx, p.Events, queue.EventBookingPaid, b, now)
		return code, nil
	}
	return "", domain.Internal("store confirmation code", errors.New("no free confirmation code after retries"))
}

// Confirm checks the code the driver was given and closes the handshake.
// A second call finds the booking past paid and fails with InvalidState.
func (p *PaymentHandshake) Confirm(ctx context.Context, bookingID, actingDriverID uint, code string) (*models.Booking, error) {
	b, err := p.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if b.DriverID != actingDriverID {
		return nil, domain.Unauthorized("only the driver of this trip can confirm the payment")
	}
	if b.Status != models.BookingStatusPaid {
		return nil, domain.InvalidState("payment can only be confirmed on a paid booking")
	}
	if b.ConfirmationCode == nil || !codesEqual(*b.ConfirmationCode, code) {
		return nil, domain.New(domain.CodeCodeMismatch, "confirmation code does not match")
	}

	now := p.now()
	ok, err := p.Bookings.Transition(ctx, b.ID, models.BookingStatusPaid, models.BookingUpdate{
		Status:      models.BookingStatusPaymentConfirmed,
		ConfirmedAt: &now,
	})
	if err != nil {
		return nil, domain.Internal("update booking status", err)
	}
	if !ok {
		return nil, domain.InvalidState("payment has already been confirmed")
	}
	b.Status = models.BookingStatusPaymentConfirmed
	b.ConfirmedAt = &now

	notify(ctx, p.Notifier, b.PassengerID, b.ID, models.NotificationPaymentConfirmed,
		"Payment confirmed",
		"The driver confirmed your payment. Have a good trip!")
	publishEvent(ctx, p.Events, queue.EventBookingPaymentConfirmed, b, now)
	return b, nil
}

func (p *PaymentHandshake) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// codesEqual is an exact comparison that does not leak the matching prefix
// length through timing.
func codesEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
