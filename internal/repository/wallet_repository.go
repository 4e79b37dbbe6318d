package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository struct {
	DB *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{DB: db}
}

type earningRow struct {
	Seats        int
	PricePerSeat int64
}

// CompletedEarnings lists seats and seat price of every completed booking
// the driver carried.
func (r *WalletRepository) CompletedEarnings(ctx context.Context, driverID uint) ([]utils.EarningLine, error) {
	var rows []earningRow
	err := r.DB.WithContext(ctx).
		Table("bookings").
		Select("bookings.seats AS seats, trips.price_per_seat AS price_per_seat").
		Joins("JOIN trips ON trips.id = bookings.trip_id").
		Where("bookings.driver_id = ? AND bookings.status = ? AND bookings.deleted_at IS NULL", driverID, models.BookingStatusCompleted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]utils.EarningLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, utils.EarningLine{Seats: row.Seats, PricePerSeat: row.PricePerSeat})
	}
	return lines, nil
}

// Upsert writes the balance of userID, creating the wallet if needed. The
// returned wallet is the stored row on both the insert and update paths.
func (r *WalletRepository) Upsert(ctx context.Context, userID uint, balance int64, at time.Time) (*models.Wallet, error) {
	w := &models.Wallet{UserID: userID, Balance: balance, UpdatedAt: at}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
		}, clause.Returning{}).
		Create(w).Error
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Get returns the stored wallet, or an empty one when it was never synced.
func (r *WalletRepository) Get(ctx context.Context, userID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Wallet{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
