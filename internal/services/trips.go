package services

import (
	"context"
	"strings"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
)

// MaxTripSeats is the most seats a driver may offer on one trip.
const MaxTripSeats = 8

type TripCatalogStore interface {
	Create(ctx context.Context, trip *models.Trip) error
	Get(ctx context.Context, id uint) (*models.Trip, error)
	ListAvailable(ctx context.Context, limit int) ([]models.Trip, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Trip, error)
}

// TripInput is what a driver supplies when publishing a trip.
type TripInput struct {
	Origin        string
	Destination   string
	Stopover      string
	DepartureDate string
	DepartureTime string
	VehicleType   string
	PricePerSeat  int64
	TotalSeats    int
}

// TripCatalog publishes and lists trips. Seat counts are only moved by
// TripInventory after creation.
type TripCatalog struct {
	Trips TripCatalogStore
}

func NewTripCatalog(trips TripCatalogStore) *TripCatalog {
	return &TripCatalog{Trips: trips}
}

func (s *TripCatalog) Publish(ctx context.Context, driverID uint, in TripInput) (*models.Trip, error) {
	if driverID == 0 {
		return nil, domain.InvalidRequest("driverId", "is required")
	}
	trip := &models.Trip{
		DriverID:       driverID,
		Origin:         strings.TrimSpace(in.Origin),
		Destination:    strings.TrimSpace(in.Destination),
		Stopover:       strings.TrimSpace(in.Stopover),
		DepartureDate:  strings.TrimSpace(in.DepartureDate),
		DepartureTime:  strings.TrimSpace(in.DepartureTime),
		VehicleType:    strings.TrimSpace(in.VehicleType),
		PricePerSeat:   in.PricePerSeat,
		TotalSeats:     in.TotalSeats,
		AvailableSeats: in.TotalSeats,
	}
	if err := validateTrip(trip); err != nil {
		return nil, err
	}
	if err := s.Trips.Create(ctx, trip); err != nil {
		return nil, domain.Internal("create trip", err)
	}
	return trip, nil
}

func validateTrip(t *models.Trip) error {
	switch {
	case t.Origin == "":
		return domain.InvalidRequest("origin", "is required")
	case t.Destination == "":
		return domain.InvalidRequest("destination", "is required")
	case t.TotalSeats < 1 || t.TotalSeats > MaxTripSeats:
		return domain.InvalidRequest("totalSeats", "must be between 1 and 8")
	case t.PricePerSeat < 0:
		return domain.InvalidRequest("pricePerSeat", "must not be negative")
	}
	if _, err := time.Parse("2006-01-02", t.DepartureDate); err != nil {
		return domain.InvalidRequest("departureDate", "must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", t.DepartureTime); err != nil {
		return domain.InvalidRequest("departureTime", "must be HH:MM")
	}
	return nil
}

func (s *TripCatalog) Get(ctx context.Context, id uint) (*models.Trip, error) {
	t, err := s.Trips.Get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("load trip", err)
	}
	return t, nil
}

func (s *TripCatalog) Available(ctx context.Context, limit int) ([]models.Trip, error) {
	trips, err := s.Trips.ListAvailable(ctx, limit)
	if err != nil {
		return nil, domain.Internal("list trips", err)
	}
	return trips, nil
}

func (s *TripCatalog) ByDriver(ctx context.Context, driverID uint) ([]models.Trip, error) {
	trips, err := s.Trips.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, domain.Internal("list trips", err)
	}
	return trips, nil
}
