package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chachabrian/covoit-backend/internal/config"
	"github.com/chachabrian/covoit-backend/internal/database"
	"github.com/chachabrian/covoit-backend/internal/queue"
	"github.com/chachabrian/covoit-backend/internal/repository"
	"github.com/chachabrian/covoit-backend/internal/services"
	"github.com/joho/godotenv"
)

// The worker keeps wallets and receipt archives in step with booking events.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded, reading configuration from the environment")
	}
	cfg := config.Load()
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	storage, err := services.InitStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	handler := &services.BookingEventHandler{
		Earnings: services.NewEarningsService(repository.NewWalletRepository(db)),
		Receipts: services.NewReceiptService(repository.NewBookingRepository(db), storage),
	}
	consumer := &queue.Consumer{URL: cfg.RabbitMQURL, Handle: handler.Handle}

	log.Printf("Worker consuming %s", queue.BookingEventsQueue)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Worker stopped: %v", err)
	}
	log.Println("Worker exited")
}
