package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/chachabrian/covoit-backend/internal/models"
	"google.golang.org/api/option"
)

// InitFirebase returns an FCM client, or nil when no service account is
// configured. Push delivery is then skipped.
func InitFirebase(ctx context.Context, serviceAccountPath string) (*messaging.Client, error) {
	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Push notifications will be disabled.")
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %v", err)
	}

	log.Println("Firebase Cloud Messaging initialized successfully")
	return client, nil
}

// MessageSender is the part of the FCM client used for delivery.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DeviceDirectory resolves device tokens and push preferences.
type DeviceDirectory interface {
	FCMToken(ctx context.Context, userID uint) (string, error)
	Preferences(ctx context.Context, userID uint) (*models.NotificationPreference, error)
}

// FirebasePusher sends stored notifications to the recipient's device.
type FirebasePusher struct {
	Sender  MessageSender
	Devices DeviceDirectory
}

func NewFirebasePusher(sender MessageSender, devices DeviceDirectory) *FirebasePusher {
	return &FirebasePusher{Sender: sender, Devices: devices}
}

// Push is a no-op when the user has no token or opted out of the type.
func (p *FirebasePusher) Push(ctx context.Context, n *models.Notification) error {
	if p.Sender == nil {
		return nil
	}

	prefs, err := p.Devices.Preferences(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load preferences: %v", err)
	}
	if !prefs.AllowsPush(n.Type) {
		return nil
	}

	token, err := p.Devices.FCMToken(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load device token: %v", err)
	}
	if token == "" {
		return nil
	}

	if _, err := p.Sender.Send(ctx, buildPushMessage(token, n)); err != nil {
		return fmt.Errorf("error sending message: %v", err)
	}
	return nil
}

func buildPushMessage(token string, n *models.Notification) *messaging.Message {
	badge := 1
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"type":           n.Type,
			"bookingId":      strconv.FormatUint(uint64(n.BookingID), 10),
			"notificationId": strconv.FormatUint(uint64(n.ID), 10),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:             "covoit_bookings",
				Sound:                 "default",
				DefaultSound:          true,
				Tag:                   n.Type,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:          "default",
					Badge:          &badge,
					MutableContent: true,
				},
			},
		},
	}
}
