package handlers

import (
	"net/http"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// CreateBooking requests seats on a trip for the caller.
func CreateBooking(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		var input struct {
			TripID uint `json:"tripId" binding:"required"`
			Seats  *int `json:"seats"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		// Omitted seats means one; an explicit value is validated by the ledger.
		seats := 1
		if input.Seats != nil {
			seats = *input.Seats
		}

		booking, err := ledger.CreateBooking(c.Request.Context(), input.TripID, userId, seats)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"bookingId": booking.ID, "booking": booking})
	}
}

// GetBooking returns a booking to its passenger or driver.
func GetBooking(bookings BookingReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		booking, err := bookings.Get(c.Request.Context(), id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !booking.IsParty(c.GetUint("userId")) {
			RespondDomainError(c, domain.Unauthorized("you are not part of this booking"))
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// GetPassengerBookings lists the caller's bookings as a passenger.
func GetPassengerBookings(bookings BookingReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bookings.ListByPassenger(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Internal("list bookings", err))
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetDriverBookings lists bookings on the caller's trips.
func GetDriverBookings(bookings BookingReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bookings.ListByDriver(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Internal("list bookings", err))
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CancelBooking lets the passenger withdraw a pending or confirmed booking.
func CancelBooking(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		booking, err := ledger.Cancel(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// InitiatePayment marks the booking paid and hands the confirmation code to
// the paying passenger. This response is the only place the code appears.
func InitiatePayment(payments Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		code, err := payments.Initiate(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{"bookingId": id, "status": "paid", "confirmationCode": code})
	}
}

// GetReceipt streams the PDF receipt of a payment-confirmed booking.
func GetReceipt(receipts Receipts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		pdf, err := receipts.Render(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", "inline; filename=receipt.pdf")
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
