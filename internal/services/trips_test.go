package services

import (
	"context"
	"errors"
	"testing"

	"github.com/chachabrian/covoit-backend/internal/domain"
)

func validTripInput() TripInput {
	return TripInput{
		Origin:        " Lyon ",
		Destination:   "Grenoble",
		DepartureDate: "2026-11-02",
		DepartureTime: "08:30",
		PricePerSeat:  1250,
		TotalSeats:    3,
	}
}

func TestPublishTripStartsFull(t *testing.T) {
	trips := newMemTrips()
	cat := NewTripCatalog(trips)

	trip, err := cat.Publish(context.Background(), driverID, validTripInput())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if trip.ID == 0 || trip.Origin != "Lyon" || trip.AvailableSeats != 3 || trip.DriverID != driverID {
		t.Fatalf("unexpected trip %+v", trip)
	}

	mine, _ := cat.ByDriver(context.Background(), driverID)
	if len(mine) != 1 {
		t.Fatalf("driver has %d trips", len(mine))
	}
}

func TestPublishTripValidation(t *testing.T) {
	cat := NewTripCatalog(newMemTrips())
	mutations := map[string]func(*TripInput){
		"no origin":      func(in *TripInput) { in.Origin = " " },
		"no destination": func(in *TripInput) { in.Destination = "" },
		"zero seats":     func(in *TripInput) { in.TotalSeats = 0 },
		"too many seats": func(in *TripInput) { in.TotalSeats = MaxTripSeats + 1 },
		"negative price": func(in *TripInput) { in.PricePerSeat = -1 },
		"bad date":       func(in *TripInput) { in.DepartureDate = "02/11/2026" },
		"bad time":       func(in *TripInput) { in.DepartureTime = "8h30" },
	}
	for name, mutate := range mutations {
		in := validTripInput()
		mutate(&in)
		if _, err := cat.Publish(context.Background(), driverID, in); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("%s: expected invalid request, got %v", name, err)
		}
	}
}

func TestGetUnknownTrip(t *testing.T) {
	cat := NewTripCatalog(newMemTrips())
	if _, err := cat.Get(context.Background(), 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
