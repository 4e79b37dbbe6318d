package handlers

import (
	"net/http"

	"github.com/chachabrian/covoit-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Deps bundles what the routes need. Hub may be nil when realtime is off.
type Deps struct {
	Trips         Trips
	Ledger        Ledger
	Payments      Payments
	Bookings      BookingReader
	Conversations Conversations
	Inbox         Inbox
	Users         Users
	Wallets       Wallets
	Receipts      Receipts
	Hub           *services.Hub
}

// RegisterRoutes mounts /healthz and the authenticated /api tree on r.
func RegisterRoutes(r *gin.Engine, d Deps, auth gin.HandlerFunc) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(auth)
	{
		if d.Hub != nil {
			api.GET("/ws", WebSocketHandler(d.Hub))
		}

		users := api.Group("/users")
		{
			users.GET("/profile", GetProfile(d.Users))
			users.PUT("/profile", UpdateProfile(d.Users))
		}

		trips := api.Group("/trips")
		{
			trips.POST("", CreateTrip(d.Trips))
			trips.GET("", ListTrips(d.Trips))
			trips.GET("/mine", GetMyTrips(d.Trips))
			trips.GET("/:id", GetTrip(d.Trips))
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", CreateBooking(d.Ledger))
			bookings.GET("/passenger", GetPassengerBookings(d.Bookings))
			bookings.GET("/driver", GetDriverBookings(d.Bookings))
			bookings.GET("/:id", GetBooking(d.Bookings))
			bookings.POST("/:id/decision", DecideBooking(d.Ledger))
			bookings.POST("/:id/cancel", CancelBooking(d.Ledger))
			bookings.POST("/:id/complete", CompleteBooking(d.Ledger))
			bookings.POST("/:id/payment/initiate", InitiatePayment(d.Payments))
			bookings.POST("/:id/payment/confirm", ConfirmPayment(d.Payments))
			bookings.GET("/:id/receipt", GetReceipt(d.Receipts))
			bookings.GET("/:id/messages", GetMessages(d.Conversations))
			bookings.POST("/:id/messages", SendMessage(d.Conversations))
		}

		api.GET("/conversations", GetConversations(d.Conversations))

		notifications := api.Group("/notifications")
		{
			notifications.GET("", GetNotifications(d.Inbox))
			notifications.POST("/read-all", MarkAllNotificationsRead(d.Inbox))
			notifications.POST("/:id/read", MarkNotificationRead(d.Inbox))
			notifications.POST("/register-token", RegisterFCMToken(d.Users))
			notifications.DELETE("/remove-token", RemoveFCMToken(d.Users))
			notifications.GET("/preferences", GetNotificationPreferences(d.Users))
			notifications.PUT("/preferences", UpdateNotificationPreferences(d.Users))
		}

		wallet := api.Group("/wallet")
		{
			wallet.GET("", GetWallet(d.Wallets))
			wallet.POST("/sync", SyncWallet(d.Wallets))
		}
	}
}
