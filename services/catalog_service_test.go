package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/models"
)

func hoodiePrize() *models.CatalogItem {
	return &models.CatalogItem{
		ID:        "p1",
		Name:      "Company Hoodie",
		Category:  models.CategoryPhysical,
		CoinPrice: 500,
		Variants: []models.Variant{
			{ID: "v-s", Name: "Small", Stock: 0},
			{ID: "v-l", Name: "Large", Stock: 3},
		},
	}
}

func TestCatalogServiceListPrizes(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("annotates items with derived state", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		cache := newFakeCache()
		svc := NewCatalogService(mockPlatform, cache, &fakePublisher{}, logger)

		mockPlatform.On("ListPrizes", mock.Anything, "u1").Return([]models.CatalogItem{*hoodiePrize()}, nil).Once()

		views, svcErr := svc.ListPrizes(ctx, "u1")

		assert.Nil(t, svcErr)
		assert.Len(t, views, 1)
		assert.Equal(t, "v-l", views[0].DefaultVariantID, "sold-out first variant must be skipped")
		assert.False(t, views[0].HasStockIssue)
		assert.True(t, views[0].Redeemable)
		mockPlatform.AssertExpectations(t)
	})

	t.Run("serves the second call from cache", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		cache := newFakeCache()
		svc := NewCatalogService(mockPlatform, cache, &fakePublisher{}, logger)

		mockPlatform.On("ListPrizes", mock.Anything, "u1").Return([]models.CatalogItem{*hoodiePrize()}, nil).Once()

		_, svcErr := svc.ListPrizes(ctx, "u1")
		assert.Nil(t, svcErr)
		_, svcErr = svc.ListPrizes(ctx, "u1")
		assert.Nil(t, svcErr)

		mockPlatform.AssertNumberOfCalls(t, "ListPrizes", 1)
	})

	t.Run("passes the upstream message through", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		mockPlatform.On("ListPrizes", mock.Anything, "u1").
			Return(nil, &clients.UpstreamError{StatusCode: 503, Message: "Catalog is under maintenance"}).Once()

		views, svcErr := svc.ListPrizes(ctx, "u1")

		assert.Nil(t, views)
		assert.Equal(t, 503, svcErr.StatusCode)
		assert.Equal(t, "Catalog is under maintenance", svcErr.Message)
	})

	t.Run("wraps transport failures as 502", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		mockPlatform.On("ListPrizes", mock.Anything, "u1").Return(nil, errors.New("connection refused")).Once()

		_, svcErr := svc.ListPrizes(ctx, "u1")
		assert.Equal(t, 502, svcErr.StatusCode)
	})
}

func TestCatalogServiceGetPrize(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("flags a fully sold-out item", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		item := hoodiePrize()
		item.Variants[1].Stock = 0
		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(item, nil).Once()

		view, svcErr := svc.GetPrize(ctx, "u1", "p1")

		assert.Nil(t, svcErr)
		assert.True(t, view.HasStockIssue)
		assert.False(t, view.Redeemable)
		assert.Empty(t, view.DefaultVariantID)
	})
}

func TestCatalogServiceRedeem(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("happy path invalidates caches and publishes", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		cache := newFakeCache()
		publisher := &fakePublisher{}
		svc := NewCatalogService(mockPlatform, cache, publisher, logger)

		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(hoodiePrize(), nil).Once()
		mockPlatform.On("Redeem", mock.Anything, "u1", "p1", "v-l").
			Return(&models.Redemption{ID: "r1", Status: models.StatusPending}, nil).Once()

		redemption, svcErr := svc.Redeem(ctx, "u1", "p1", "v-l")

		assert.Nil(t, svcErr)
		assert.Equal(t, "r1", redemption.ID)
		assert.ElementsMatch(t, []string{TagBalance, TagRedemptions, TagCatalog}, cache.invalidated)
		assert.Len(t, publisher.events, 1)
		event := publisher.events[0].event.(models.PrizeRedeemedEvent)
		assert.Equal(t, models.EventPrizeRedeemed, event.EventType)
		assert.Equal(t, int64(500), event.CoinPrice)
		mockPlatform.AssertExpectations(t)
	})

	t.Run("sold-out item is a 409 before any platform call", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		item := hoodiePrize()
		item.Variants = nil
		item.Stock = 0
		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(item, nil).Once()

		_, svcErr := svc.Redeem(ctx, "u1", "p1", "")

		assert.Equal(t, 409, svcErr.StatusCode)
		mockPlatform.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing variant selection is a 400", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(hoodiePrize(), nil).Once()

		_, svcErr := svc.Redeem(ctx, "u1", "p1", "")
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("sold-out variant is a 409, unknown variant a 404", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		svc := NewCatalogService(mockPlatform, newFakeCache(), &fakePublisher{}, logger)

		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(hoodiePrize(), nil).Twice()

		_, svcErr := svc.Redeem(ctx, "u1", "p1", "v-s")
		assert.Equal(t, 409, svcErr.StatusCode)

		_, svcErr = svc.Redeem(ctx, "u1", "p1", "v-x")
		assert.Equal(t, 404, svcErr.StatusCode)
	})

	t.Run("upstream rejection passes through with no invalidation", func(t *testing.T) {
		mockPlatform := new(MockPlatformClient)
		cache := newFakeCache()
		svc := NewCatalogService(mockPlatform, cache, &fakePublisher{}, logger)

		mockPlatform.On("GetPrize", mock.Anything, "u1", "p1").Return(hoodiePrize(), nil).Once()
		mockPlatform.On("Redeem", mock.Anything, "u1", "p1", "v-l").
			Return(nil, &clients.UpstreamError{StatusCode: 422, Message: "Insufficient redeemable balance"}).Once()

		_, svcErr := svc.Redeem(ctx, "u1", "p1", "v-l")

		assert.Equal(t, 422, svcErr.StatusCode)
		assert.Equal(t, "Insufficient redeemable balance", svcErr.Message)
		assert.Empty(t, cache.invalidated)
	})
}
