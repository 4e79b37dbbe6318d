package repository

import (
	"context"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// Create inserts a booking. A unique violation can only come from the
// active passenger/driver index, so it is reported as a duplicate request.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	err := r.DB.WithContext(ctx).Omit("Trip").Create(b).Error
	if isUniqueViolation(err) {
		return &domain.Error{Code: domain.CodeDuplicateActiveRequest, Msg: "an active booking with this driver already exists", Err: err}
	}
	return err
}

func (r *BookingRepository) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "booking")
	}
	return &b, nil
}

// GetWithTrip loads the booking and its trip in two lookups by key.
func (r *BookingRepository) GetWithTrip(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.DB.WithContext(ctx).Preload("Trip").First(&b, id).Error; err != nil {
		return nil, notFound(err, "booking")
	}
	return &b, nil
}

// HasActive reports whether the passenger holds a pending or confirmed
// booking with the driver on any of the driver's trips.
func (r *BookingRepository) HasActive(ctx context.Context, passengerID, driverID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("passenger_id = ? AND driver_id = ? AND status IN ?", passengerID, driverID, models.ActiveBookingStatuses).
		Count(&n).Error
	return n > 0, err
}

// Transition applies update only while the booking is still in status
// from. It reports false when another caller moved the booking first. A
// unique violation here means the new confirmation code is already held by
// another paid booking.
func (r *BookingRepository) Transition(ctx context.Context, id uint, from models.BookingStatus, update models.BookingUpdate) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(update.Columns())
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, &domain.Error{Code: domain.ErrCodeInUse.Code, Err: res.Error}
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID uint) ([]models.Booking, error) {
	return r.list(ctx, "passenger_id = ?", passengerID)
}

func (r *BookingRepository) ListByDriver(ctx context.Context, driverID uint) ([]models.Booking, error) {
	return r.list(ctx, "driver_id = ?", driverID)
}

// ListForParty returns every booking where userID is passenger or driver.
func (r *BookingRepository) ListForParty(ctx context.Context, userID uint) ([]models.Booking, error) {
	return r.list(ctx, "passenger_id = ? OR driver_id = ?", userID, userID)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.DB.WithContext(ctx).
		Where(query, args...).
		Preload("Trip").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}
