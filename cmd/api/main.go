package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chachabrian/covoit-backend/internal/config"
	"github.com/chachabrian/covoit-backend/internal/database"
	"github.com/chachabrian/covoit-backend/internal/handlers"
	"github.com/chachabrian/covoit-backend/internal/middleware"
	"github.com/chachabrian/covoit-backend/internal/queue"
	"github.com/chachabrian/covoit-backend/internal/repository"
	"github.com/chachabrian/covoit-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded, reading configuration from the environment")
	}
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	trips := repository.NewTripRepository(db)
	bookings := repository.NewBookingRepository(db)
	notificationsRepo := repository.NewNotificationRepository(db)
	messages := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	wallets := repository.NewWalletRepository(db)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run(ctx)

	emitter := &services.NotificationEmitter{Store: notificationsRepo, Broadcaster: hub}

	if cfg.RedisURL != "" {
		rdb, err := services.InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer rdb.Close()
		relay := services.NewRedisRelay(rdb, hub)
		go relay.Run(ctx)
		emitter.Broadcaster = relay
		log.Println("Redis notification relay enabled")
	}

	fcm, err := services.InitFirebase(ctx, cfg.FirebaseServiceAccountPath)
	if err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}
	if fcm != nil {
		emitter.Pusher = services.NewFirebasePusher(fcm, users)
	}

	// The publisher outlives the signal context so requests still in flight
	// during shutdown can emit their events.
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	var publisher *queue.Publisher
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		publisher = queue.NewPublisher(cfg.RabbitMQURL)
		go publisher.Run(pubCtx)
		events = publisher
		log.Printf("Booking events published to %s", queue.BookingEventsQueue)
	} else {
		log.Println("Warning: RABBITMQ_URL not set. Booking events will not be published.")
	}

	storage, err := services.InitStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	inventory := services.NewTripInventory(trips)
	deps := handlers.Deps{
		Trips:         services.NewTripCatalog(trips),
		Ledger:        services.NewBookingLedger(inventory, bookings, emitter, events),
		Payments:      services.NewPaymentHandshake(bookings, emitter, events),
		Bookings:      bookings,
		Conversations: services.NewMessagingService(bookings, bookings, messages, emitter),
		Inbox:         notificationsRepo,
		Users:         users,
		Wallets:       services.NewEarningsService(wallets),
		Receipts:      services.NewReceiptService(bookings, storage),
		Hub:           hub,
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	r.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(r, deps, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if publisher != nil {
		stopPublisher()
		select {
		case <-publisher.Done():
		case <-shutdownCtx.Done():
			log.Println("Booking event publisher did not drain before shutdown timeout")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server exited")
}
