package repository

import (
	"context"

	"github.com/chachabrian/covoit-backend/internal/models"
	"gorm.io/gorm"
)

// TripRepository owns the trips table. The seat counter is only written by
// DecrementSeats and IncrementSeats.
type TripRepository struct {
	DB *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{DB: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.DB.WithContext(ctx).Create(trip).Error
}

func (r *TripRepository) Get(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.DB.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, notFound(err, "trip")
	}
	return &trip, nil
}

// ListAvailable returns trips with at least one free seat, soonest first.
func (r *TripRepository) ListAvailable(ctx context.Context, limit int) ([]models.Trip, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var trips []models.Trip
	err := r.DB.WithContext(ctx).
		Where("available_seats > ?", 0).
		Order("departure_date ASC, departure_time ASC").
		Limit(limit).
		Find(&trips).Error
	return trips, err
}

func (r *TripRepository) ListByDriver(ctx context.Context, driverID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.DB.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}

// DecrementSeats is the compare-and-decrement: one conditional UPDATE, so
// concurrent callers are serialised by the row lock. It reports false when
// the guard did not match (trip missing or not enough seats).
func (r *TripRepository) DecrementSeats(ctx context.Context, id uint, seats int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ? AND available_seats >= ?", id, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", seats))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementSeats returns seats to the trip, clamped at total_seats. It
// reports false when the trip does not exist.
func (r *TripRepository) IncrementSeats(ctx context.Context, id uint, seats int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ?", id).
		UpdateColumn("available_seats", gorm.Expr("LEAST(total_seats, available_seats + ?)", seats))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
