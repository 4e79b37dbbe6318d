package database

import (
	"github.com/chachabrian/covoit-backend/internal/models"
	"gorm.io/gorm"
)

// constraintStatements back the engine's invariants at the storage layer.
// The seat bounds check keeps 0 <= available_seats <= total_seats even if a
// statement outside the inventory touches the row. The active-pair index
// turns a racing duplicate request into a unique violation. The paid-code
// index keeps outstanding confirmation codes distinct.
var constraintStatements = []string{
	`ALTER TABLE trips DROP CONSTRAINT IF EXISTS trips_seat_bounds_check`,
	`ALTER TABLE trips ADD CONSTRAINT trips_seat_bounds_check CHECK (available_seats >= 0 AND available_seats <= total_seats AND total_seats >= 1)`,
	`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_seats_check`,
	`ALTER TABLE bookings ADD CONSTRAINT bookings_seats_check CHECK (seats >= 1)`,
	`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
	`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'paid', 'payment_confirmed', 'completed', 'cancelled'))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_pair ON bookings (passenger_id, driver_id) WHERE status IN ('pending', 'confirmed') AND deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_outstanding_code ON bookings (confirmation_code) WHERE status = 'paid'`,
	`CREATE INDEX IF NOT EXISTS idx_messages_booking_created ON messages (booking_id, created_at)`,
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Booking{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.Message{},
		&models.Wallet{},
	)
	if err != nil {
		return err
	}

	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
