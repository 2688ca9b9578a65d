package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/models"
)

// BalanceService relays the two-ledger coin balance. The BFF never computes
// balances. It caches the server-reported numbers briefly and relies on
// mutations invalidating the balance tag.
type BalanceService interface {
	Get(ctx context.Context, userID string) (*models.Balance, *ServiceError)
}

type balanceServiceImpl struct {
	platform clients.PlatformClient
	cache    Cache
	logger   *zap.Logger
}

// NewBalanceService creates a BalanceService.
func NewBalanceService(platform clients.PlatformClient, cache Cache, logger *zap.Logger) BalanceService {
	return &balanceServiceImpl{platform: platform, cache: cache, logger: logger}
}

func (s *balanceServiceImpl) Get(ctx context.Context, userID string) (*models.Balance, *ServiceError) {
	var balance models.Balance
	if s.cache.GetJSON(ctx, TagBalance, userID, &balance) {
		return &balance, nil
	}

	fetched, err := s.platform.GetBalance(ctx, userID)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Failed to load balance", err)
	}
	s.cache.SetJSON(ctx, TagBalance, userID, fetched)
	return fetched, nil
}
