package handlers

import (
	"net/http"
	"strconv"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// GetNotifications returns the caller's notifications, newest first.
func GetNotifications(inbox Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		list, err := inbox.ListByUser(c.Request.Context(), userID, limit)
		if err != nil {
			RespondDomainError(c, domain.Internal("list notifications", err))
			return
		}
		unread, err := inbox.CountUnread(c.Request.Context(), userID)
		if err != nil {
			RespondDomainError(c, domain.Internal("count unread notifications", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"notifications": list, "unreadCount": unread})
	}
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(inbox Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		found, err := inbox.MarkRead(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Internal("mark notification read", err))
			return
		}
		if !found {
			RespondDomainError(c, domain.NotFound("notification"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}

func MarkAllNotificationsRead(inbox Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := inbox.MarkAllRead(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Internal("mark notifications read", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": n})
	}
}

// RegisterFCMToken registers or updates a user's FCM token
func RegisterFCMToken(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		if err := users.SetFCMToken(c.Request.Context(), c.GetUint("userId"), input.FCMToken); err != nil {
			RespondDomainError(c, domain.Internal("register fcm token", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "FCM token registered successfully"})
	}
}

// RemoveFCMToken removes a user's FCM token
func RemoveFCMToken(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.SetFCMToken(c.Request.Context(), c.GetUint("userId"), ""); err != nil {
			RespondDomainError(c, domain.Internal("remove fcm token", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "FCM token removed successfully"})
	}
}
