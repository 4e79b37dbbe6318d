package handlers

import (
	"net/http"

	"github.com/chachabrian/covoit-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// DecideBooking accepts or rejects a pending booking on the caller's trip.
func DecideBooking(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var input struct {
			Action string `json:"action" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		booking, err := ledger.Decide(c.Request.Context(), id, c.GetUint("userId"), services.Decision(input.Action))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// ConfirmPayment checks the code the passenger showed the driver.
func ConfirmPayment(payments Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var input struct {
			Code string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		booking, err := payments.Confirm(c.Request.Context(), id, c.GetUint("userId"), input.Code)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// CompleteBooking closes a booking after the trip took place.
func CompleteBooking(ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		booking, err := ledger.Complete(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}
