package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/chachabrian/covoit-backend/internal/domain"
)

func TestReserveAndRelease(t *testing.T) {
	trips := newMemTrips(newTrip(1, 4, 4))
	inv := NewTripInventory(trips)
	ctx := context.Background()

	if err := inv.Reserve(ctx, 1, 3); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := trips.available(1); got != 1 {
		t.Fatalf("available = %d, want 1", got)
	}

	err := inv.Reserve(ctx, 1, 2)
	if !errors.Is(err, domain.ErrInsufficientCapacity) {
		t.Fatalf("expected insufficient capacity, got %v", err)
	}
	if got := trips.available(1); got != 1 {
		t.Fatalf("failed reserve changed seats to %d", got)
	}

	if err := inv.Release(ctx, 1, 3); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := trips.available(1); got != 4 {
		t.Fatalf("available = %d, want 4", got)
	}
}

func TestReleaseClampsAtTotal(t *testing.T) {
	trips := newMemTrips(newTrip(1, 4, 3))
	inv := NewTripInventory(trips)

	if err := inv.Release(context.Background(), 1, 5); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := trips.available(1); got != 4 {
		t.Fatalf("available = %d, want clamp at 4", got)
	}
}

func TestReserveValidation(t *testing.T) {
	inv := NewTripInventory(newMemTrips(newTrip(1, 4, 4)))
	ctx := context.Background()

	for _, seats := range []int{0, -2} {
		if err := inv.Reserve(ctx, 1, seats); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("seats=%d: expected invalid request, got %v", seats, err)
		}
		if err := inv.Release(ctx, 1, seats); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("release seats=%d: expected invalid request, got %v", seats, err)
		}
	}
	if err := inv.Reserve(ctx, 99, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := inv.Release(ctx, 99, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on release, got %v", err)
	}
}

func TestConcurrentReserveNeverOversells(t *testing.T) {
	const total = 5
	trips := newMemTrips(newTrip(1, total, total))
	inv := NewTripInventory(trips)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := inv.Reserve(context.Background(), 1, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientCapacity):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != total || full != 40-total {
		t.Fatalf("ok=%d full=%d, want %d and %d", ok, full, total, 40-total)
	}
	if got := trips.available(1); got != 0 {
		t.Fatalf("available = %d, want 0", got)
	}
}
