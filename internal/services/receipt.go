package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/pkg/utils"
	"github.com/phpdave11/gofpdf"
)

type BookingWithTrip interface {
	GetWithTrip(ctx context.Context, id uint) (*models.Booking, error)
}

// ReceiptService renders payment receipts and archives them.
type ReceiptService struct {
	Bookings BookingWithTrip
	Storage  Storage
}

func NewReceiptService(bookings BookingWithTrip, storage Storage) *ReceiptService {
	return &ReceiptService{Bookings: bookings, Storage: storage}
}

// Render returns the receipt of a booking to one of its parties.
func (s *ReceiptService) Render(ctx context.Context, bookingID, userID uint) ([]byte, error) {
	b, err := s.Bookings.GetWithTrip(ctx, bookingID)
	if err != nil {
		return nil, domain.Wrap("load booking", err)
	}
	if !b.IsParty(userID) {
		return nil, domain.Unauthorized("you are not part of this booking")
	}
	return renderEligible(b)
}

// Archive stores the receipt under receipts/<booking id>.pdf.
func (s *ReceiptService) Archive(ctx context.Context, bookingID uint) (string, error) {
	if s.Storage == nil {
		return "", domain.Internal("archive receipt", fmt.Errorf("no storage configured"))
	}
	b, err := s.Bookings.GetWithTrip(ctx, bookingID)
	if err != nil {
		return "", domain.Wrap("load booking", err)
	}
	pdf, err := renderEligible(b)
	if err != nil {
		return "", err
	}
	location, err := s.Storage.Put(ctx, ReceiptKey(b.ID), pdf, "application/pdf")
	if err != nil {
		return "", domain.Internal("store receipt", err)
	}
	return location, nil
}

// ReceiptKey is the storage key of a booking's receipt.
func ReceiptKey(bookingID uint) string {
	return fmt.Sprintf("receipts/%d.pdf", bookingID)
}

func renderEligible(b *models.Booking) ([]byte, error) {
	if b.Status != models.BookingStatusPaymentConfirmed && b.Status != models.BookingStatusCompleted {
		return nil, domain.InvalidState("a receipt exists only once the payment is confirmed")
	}
	if b.Trip == nil {
		return nil, domain.NotFound("trip")
	}
	return RenderReceipt(b, b.Trip)
}

// RenderReceipt draws a one-page A4 receipt.
func RenderReceipt(b *models.Booking, trip *models.Trip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : #%d", b.ID),
		fmt.Sprintf("Trip         : %s to %s", trip.Origin, trip.Destination),
	}
	if trip.Stopover != "" {
		lines = append(lines, fmt.Sprintf("Via          : %s", trip.Stopover))
	}
	lines = append(lines,
		fmt.Sprintf("Departure    : %s %s", trip.DepartureDate, trip.DepartureTime),
		fmt.Sprintf("Seats        : %d", b.Seats),
		fmt.Sprintf("Price / seat : %s", utils.FormatAmount(trip.PricePerSeat)),
		fmt.Sprintf("Status       : %s", b.Status),
	)
	if b.PaidAt != nil {
		lines = append(lines, "Paid at      : "+b.PaidAt.UTC().Format(time.RFC3339))
	}
	if b.ConfirmedAt != nil {
		lines = append(lines, "Confirmed at : "+b.ConfirmedAt.UTC().Format(time.RFC3339))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total: "+utils.FormatAmount(utils.BookingAmount(b.Seats, trip.PricePerSeat)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment was handed to the driver in person and confirmed with the passenger's code.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.Internal("render receipt", err)
	}
	return buf.Bytes(), nil
}
