package services

import (
	"context"
	"log"

	"github.com/chachabrian/covoit-backend/internal/queue"
)

// BookingEventHandler reacts to booking transitions off the request path.
// Completed bookings refresh the driver's wallet and confirmed payments get
// their receipt archived. Other events are acknowledged and ignored.
type BookingEventHandler struct {
	Earnings *EarningsService
	Receipts *ReceiptService
}

func (h *BookingEventHandler) Handle(ctx context.Context, ev queue.BookingEvent) error {
	switch ev.Type {
	case queue.EventBookingCompleted:
		if h.Earnings == nil {
			return nil
		}
		w, err := h.Earnings.SyncWallet(ctx, ev.DriverID)
		if err != nil {
			return err
		}
		log.Printf("[WORKER] wallet of driver %d synced to %d after booking %d", ev.DriverID, w.Balance, ev.BookingID)

	case queue.EventBookingPaymentConfirmed:
		if h.Receipts == nil {
			return nil
		}
		location, err := h.Receipts.Archive(ctx, ev.BookingID)
		if err != nil {
			return err
		}
		log.Printf("[WORKER] receipt of booking %d archived at %s", ev.BookingID, location)
	}
	return nil
}
