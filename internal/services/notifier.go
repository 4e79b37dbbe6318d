package services

import (
	"context"
	"log"

	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/internal/queue"
)

// Notifier records a notification for its recipient. Delivery is best
// effort and never fails the operation that emitted it.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification)
}

// EventPublisher forwards booking transitions to the broker.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Broadcaster delivers a stored notification to the recipient's live
// connections.
type Broadcaster interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

// Pusher delivers a stored notification to the recipient's device.
type Pusher interface {
	Push(ctx context.Context, n *models.Notification) error
}

// NotificationEmitter persists notifications, then fans them out. Broadcaster
// and Pusher are optional.
type NotificationEmitter struct {
	Store       NotificationStore
	Broadcaster Broadcaster
	Pusher      Pusher
}

func (e *NotificationEmitter) Notify(ctx context.Context, n *models.Notification) {
	if n == nil || n.UserID == 0 {
		return
	}
	if err := e.Store.Create(ctx, n); err != nil {
		log.Printf("[NOTIFY] failed to store %s for user %d booking %d: %v", n.Type, n.UserID, n.BookingID, err)
		return
	}
	if e.Broadcaster != nil {
		if err := e.Broadcaster.PublishNotification(ctx, n); err != nil {
			log.Printf("[NOTIFY] broadcast of notification %d failed: %v", n.ID, err)
		}
	}
	if e.Pusher != nil {
		if err := e.Pusher.Push(ctx, n); err != nil {
			log.Printf("[NOTIFY] push of notification %d failed: %v", n.ID, err)
		}
	}
}
