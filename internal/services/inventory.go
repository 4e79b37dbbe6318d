package services

import (
	"context"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
)

// TripStore is the storage contract the inventory needs. DecrementSeats must
// be a single compare-and-decrement; IncrementSeats must clamp at total_seats.
type TripStore interface {
	Get(ctx context.Context, id uint) (*models.Trip, error)
	DecrementSeats(ctx context.Context, id uint, seats int) (bool, error)
	IncrementSeats(ctx context.Context, id uint, seats int) (bool, error)
}

// TripInventory owns the available seat counter of every trip.
type TripInventory struct {
	Trips TripStore
}

func NewTripInventory(trips TripStore) *TripInventory {
	return &TripInventory{Trips: trips}
}

// Reserve takes seats from the trip or fails with InsufficientCapacity.
func (inv *TripInventory) Reserve(ctx context.Context, tripID uint, seats int) error {
	if seats < 1 {
		return domain.InvalidRequest("seats", "must be at least 1")
	}

	ok, err := inv.Trips.DecrementSeats(ctx, tripID, seats)
	if err != nil {
		return domain.Wrap("reserve seats", err)
	}
	if ok {
		return nil
	}

	// The guard missed: either the trip is gone or it is too full.
	if _, err := inv.Trips.Get(ctx, tripID); err != nil {
		return domain.Wrap("load trip", err)
	}
	return domain.New(domain.CodeInsufficientCapacity, "not enough seats left on this trip")
}

// Release returns seats to the trip, never above its total.
func (inv *TripInventory) Release(ctx context.Context, tripID uint, seats int) error {
	if seats < 1 {
		return domain.InvalidRequest("seats", "must be at least 1")
	}

	ok, err := inv.Trips.IncrementSeats(ctx, tripID, seats)
	if err != nil {
		return domain.Wrap("release seats", err)
	}
	if !ok {
		return domain.NotFound("trip")
	}
	return nil
}
