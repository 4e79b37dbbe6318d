package services

import (
	"context"
	"time"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/chachabrian/covoit-backend/pkg/utils"
)

type WalletStore interface {
	CompletedEarnings(ctx context.Context, driverID uint) ([]utils.EarningLine, error)
	Upsert(ctx context.Context, userID uint, balance int64, at time.Time) (*models.Wallet, error)
	Get(ctx context.Context, userID uint) (*models.Wallet, error)
}

// EarningsService derives a driver's wallet from completed bookings. The
// balance is recomputed from scratch, so syncing twice is harmless.
type EarningsService struct {
	Wallets WalletStore
	Now     func() time.Time
}

func NewEarningsService(wallets WalletStore) *EarningsService {
	return &EarningsService{Wallets: wallets, Now: time.Now}
}

func (s *EarningsService) SyncWallet(ctx context.Context, driverID uint) (*models.Wallet, error) {
	if driverID == 0 {
		return nil, domain.InvalidRequest("driverId", "is required")
	}
	lines, err := s.Wallets.CompletedEarnings(ctx, driverID)
	if err != nil {
		return nil, domain.Internal("load completed bookings", err)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	w, err := s.Wallets.Upsert(ctx, driverID, utils.TotalEarnings(lines), now)
	if err != nil {
		return nil, domain.Internal("store wallet", err)
	}
	return w, nil
}

func (s *EarningsService) Wallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	w, err := s.Wallets.Get(ctx, userID)
	if err != nil {
		return nil, domain.Internal("load wallet", err)
	}
	return w, nil
}
