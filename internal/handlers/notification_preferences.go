package handlers

import (
	"net/http"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// GetNotificationPreferences returns stored preferences or the defaults.
func GetNotificationPreferences(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefs, err := users.Preferences(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Internal("load preferences", err))
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}

// UpdateNotificationPreferences updates only the provided toggles.
func UpdateNotificationPreferences(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			PushEnabled   *bool `json:"pushEnabled"`
			BookingAlerts *bool `json:"bookingAlerts"`
			PaymentAlerts *bool `json:"paymentAlerts"`
			MessageAlerts *bool `json:"messageAlerts"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		prefs, err := users.Preferences(c.Request.Context(), userID)
		if err != nil {
			RespondDomainError(c, domain.Internal("load preferences", err))
			return
		}

		if input.PushEnabled != nil {
			prefs.PushEnabled = *input.PushEnabled
		}
		if input.BookingAlerts != nil {
			prefs.BookingAlerts = *input.BookingAlerts
		}
		if input.PaymentAlerts != nil {
			prefs.PaymentAlerts = *input.PaymentAlerts
		}
		if input.MessageAlerts != nil {
			prefs.MessageAlerts = *input.MessageAlerts
		}
		prefs.UserID = userID

		if err := users.SavePreferences(c.Request.Context(), prefs); err != nil {
			RespondDomainError(c, domain.Internal("save preferences", err))
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}
