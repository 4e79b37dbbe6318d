package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
)

type BookingGetter interface {
	Get(ctx context.Context, id uint) (*models.Booking, error)
}

type PartyBookings interface {
	ListForParty(ctx context.Context, userID uint) ([]models.Booking, error)
}

type MessageStore interface {
	Create(ctx context.Context, m *models.Message) error
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Message, error)
}

// MessagingService stores conversations keyed by booking. A conversation
// exists only between the passenger and the driver of that booking.
type MessagingService struct {
	Bookings BookingGetter
	Parties  PartyBookings
	Messages MessageStore
	Notifier Notifier
}

func NewMessagingService(bookings BookingGetter, parties PartyBookings, messages MessageStore, notifier Notifier) *MessagingService {
	return &MessagingService{Bookings: bookings, Parties: parties, Messages: messages, Notifier: notifier}
}

// Send writes a message from senderID to the other party of the booking.
// The receiver is derived from the booking, never taken from the caller.
func (s *MessagingService) Send(ctx context.Context, bookingID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.InvalidRequest("content", "is required")
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, domain.InvalidRequest("content", fmt.Sprintf("must be at most %d characters", models.MaxMessageLength))
	}

	b, err := s.party(ctx, bookingID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		BookingID:  b.ID,
		SenderID:   senderID,
		ReceiverID: b.Counterparty(senderID),
		Content:    content,
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, domain.Internal("store message", err)
	}

	notify(ctx, s.Notifier, msg.ReceiverID, b.ID, models.NotificationNewMessage,
		"New message",
		fmt.Sprintf("You have a new message about booking #%d.", b.ID))
	return msg, nil
}

// List returns the conversation of a booking to one of its parties.
func (s *MessagingService) List(ctx context.Context, bookingID, userID uint) ([]models.Message, error) {
	if _, err := s.party(ctx, bookingID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.Messages.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, domain.Internal("list messages", err)
	}
	return msgs, nil
}

// Conversations lists the bookings userID can message about.
func (s *MessagingService) Conversations(ctx context.Context, userID uint) ([]models.Booking, error) {
	bookings, err := s.Parties.ListForParty(ctx, userID)
	if err != nil {
		return nil, domain.Internal("list conversations", err)
	}
	return bookings, nil
}

func (s *MessagingService) party(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if !b.IsParty(userID) {
		return nil, domain.Unauthorized("you are not part of this booking")
	}
	return b, nil
}
