package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/chachabrian/covoit-backend/internal/models"
)

func attach(h *Hub, userID uint, buffer int) *Client {
	c := &Client{ID: userID, Send: make(chan []byte, buffer), Hub: h}
	h.mutex.Lock()
	h.clients[c] = true
	h.mutex.Unlock()
	return c
}

func TestBroadcastToUserTargetsOnlyThatUser(t *testing.T) {
	h := NewHub()
	a1 := attach(h, passengerID, 4)
	a2 := attach(h, passengerID, 4)
	b := attach(h, driverID, 4)

	if n := h.BroadcastToUser(passengerID, []byte("hi")); n != 2 {
		t.Fatalf("delivered to %d clients, want 2", n)
	}
	if len(a1.Send) != 1 || len(a2.Send) != 1 || len(b.Send) != 0 {
		t.Fatalf("unexpected buffers %d %d %d", len(a1.Send), len(a2.Send), len(b.Send))
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	h := NewHub()
	slow := attach(h, passengerID, 1)
	slow.Send <- []byte("backlog")

	if n := h.BroadcastToUser(passengerID, []byte("next")); n != 0 {
		t.Fatalf("delivered = %d", n)
	}
	if h.GetConnectedClients() != 0 {
		t.Fatalf("slow client still registered")
	}
	<-slow.Send
	if _, ok := <-slow.Send; ok {
		t.Fatalf("send channel of a dropped client must be closed")
	}
}

func TestHubPublishNotificationEnvelope(t *testing.T) {
	h := NewHub()
	c := attach(h, passengerID, 1)

	n := &models.Notification{ID: 3, UserID: passengerID, BookingID: 9, Type: models.NotificationBookingConfirmed}
	if err := h.PublishNotification(context.Background(), n); err != nil {
		t.Fatalf("publish: %v", err)
	}

	var env struct {
		Type string              `json:"type"`
		Data models.Notification `json:"data"`
	}
	if err := json.Unmarshal(<-c.Send, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Type != "notification" || env.Data.ID != 3 || env.Data.BookingID != 9 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestHubRunClosesClientsOnShutdown(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := &Client{ID: passengerID, Send: make(chan []byte, 1), Hub: h}
	h.register <- c
	cancel()
	<-stopped

	if _, ok := <-c.Send; ok {
		t.Fatalf("client channel left open after shutdown")
	}
	select {
	case <-h.done:
	default:
		t.Fatalf("done not closed")
	}
}

func TestRedisRelayDeliversToLocalHub(t *testing.T) {
	h := NewHub()
	c := attach(h, driverID, 2)
	r := NewRedisRelay(nil, h)

	payload, _ := json.Marshal(models.Notification{ID: 1, UserID: driverID, Type: models.NotificationPaymentReceived})
	r.deliver(context.Background(), string(payload))
	r.deliver(context.Background(), "{broken")

	if len(c.Send) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(c.Send))
	}
}
