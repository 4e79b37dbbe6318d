package handlers

import (
	"context"

	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/internal/services"
)

// Ledger is the booking state machine as seen from HTTP.
type Ledger interface {
	CreateBooking(ctx context.Context, tripID, passengerID uint, seats int) (*models.Booking, error)
	Decide(ctx context.Context, bookingID, driverID uint, action services.Decision) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, passengerID uint) (*models.Booking, error)
	Complete(ctx context.Context, bookingID, driverID uint) (*models.Booking, error)
}

type Payments interface {
	Initiate(ctx context.Context, bookingID, payerID uint) (string, error)
	Confirm(ctx context.Context, bookingID, driverID uint, code string) (*models.Booking, error)
}

type BookingReader interface {
	Get(ctx context.Context, id uint) (*models.Booking, error)
	ListByPassenger(ctx context.Context, passengerID uint) ([]models.Booking, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Booking, error)
}

type Trips interface {
	Publish(ctx context.Context, driverID uint, in services.TripInput) (*models.Trip, error)
	Get(ctx context.Context, id uint) (*models.Trip, error)
	Available(ctx context.Context, limit int) ([]models.Trip, error)
	ByDriver(ctx context.Context, driverID uint) ([]models.Trip, error)
}

type Conversations interface {
	Send(ctx context.Context, bookingID, senderID uint, content string) (*models.Message, error)
	List(ctx context.Context, bookingID, userID uint) ([]models.Message, error)
	Conversations(ctx context.Context, userID uint) ([]models.Booking, error)
}

type Inbox interface {
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

// Users covers profiles, device tokens and push preferences.
type Users interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	SaveProfile(ctx context.Context, u *models.User) error
	SetFCMToken(ctx context.Context, userID uint, token string) error
	Preferences(ctx context.Context, userID uint) (*models.NotificationPreference, error)
	SavePreferences(ctx context.Context, p *models.NotificationPreference) error
}

type Wallets interface {
	SyncWallet(ctx context.Context, driverID uint) (*models.Wallet, error)
	Wallet(ctx context.Context, userID uint) (*models.Wallet, error)
}

type Receipts interface {
	Render(ctx context.Context, bookingID, userID uint) ([]byte, error)
}
