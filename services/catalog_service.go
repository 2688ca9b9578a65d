package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/models"
)

// CatalogService serves the prize catalog with derived redeemability state
// and confirms redemptions against it.
type CatalogService interface {
	ListPrizes(ctx context.Context, userID string) ([]models.CatalogItemView, *ServiceError)
	GetPrize(ctx context.Context, userID, prizeID string) (*models.CatalogItemView, *ServiceError)
	Redeem(ctx context.Context, userID, prizeID, variantID string) (*models.Redemption, *ServiceError)
}

type catalogServiceImpl struct {
	platform  clients.PlatformClient
	cache     Cache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(platform clients.PlatformClient, cache Cache, publisher EventPublisher, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{platform: platform, cache: cache, publisher: publisher, logger: logger}
}

// ListPrizes returns the catalog annotated with the derived state the
// frontend renders. The plain catalog is shared between users, so the cache
// key is constant under the catalog tag.
func (s *catalogServiceImpl) ListPrizes(ctx context.Context, userID string) ([]models.CatalogItemView, *ServiceError) {
	var items []models.CatalogItem
	if !s.cache.GetJSON(ctx, TagCatalog, "list", &items) {
		fetched, err := s.platform.ListPrizes(ctx, userID)
		if err != nil {
			return nil, upstreamServiceError(s.logger, "Failed to load catalog", err)
		}
		items = fetched
		s.cache.SetJSON(ctx, TagCatalog, "list", items)
	}

	views := make([]models.CatalogItemView, 0, len(items))
	for i := range items {
		views = append(views, annotatePrize(&items[i]))
	}
	return views, nil
}

// GetPrize returns one catalog item with derived state.
func (s *catalogServiceImpl) GetPrize(ctx context.Context, userID, prizeID string) (*models.CatalogItemView, *ServiceError) {
	var item models.CatalogItem
	if !s.cache.GetJSON(ctx, TagCatalog, "detail:"+prizeID, &item) {
		fetched, err := s.platform.GetPrize(ctx, userID, prizeID)
		if err != nil {
			return nil, upstreamServiceError(s.logger, "Failed to load prize", err)
		}
		item = *fetched
		s.cache.SetJSON(ctx, TagCatalog, "detail:"+prizeID, item)
	}

	view := annotatePrize(&item)
	return &view, nil
}

// Redeem validates the variant selection against fresh stock and forwards
// the redemption to the platform. Validation failures are client-local and
// never reach the platform; the platform's own stock/balance check remains
// the final word.
func (s *catalogServiceImpl) Redeem(ctx context.Context, userID, prizeID, variantID string) (*models.Redemption, *ServiceError) {
	// Fresh read: redeeming against a cached stock count invites avoidable
	// upstream rejections.
	item, err := s.platform.GetPrize(ctx, userID, prizeID)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Failed to load prize", err)
	}

	if HasStockIssue(item) {
		return nil, &ServiceError{StatusCode: 409, Message: "This prize is out of stock"}
	}
	if item.HasVariants() {
		if variantID == "" {
			return nil, &ServiceError{StatusCode: 400, Message: "Select an option before redeeming"}
		}
		if _, err := ValidateSelection(item.Variants, variantID); err != nil {
			switch {
			case errors.Is(err, ErrVariantOutOfStock):
				return nil, &ServiceError{StatusCode: 409, Message: "The selected option is out of stock"}
			default:
				return nil, &ServiceError{StatusCode: 404, Message: "The selected option does not exist"}
			}
		}
	}

	redemption, err := s.platform.Redeem(ctx, userID, prizeID, variantID)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Redemption failed", err)
	}

	s.cache.InvalidateTags(ctx, TagBalance, TagRedemptions, TagCatalog)
	s.publishEvent(ctx, userID, models.PrizeRedeemedEvent{
		EventType:    models.EventPrizeRedeemed,
		RedemptionID: redemption.ID,
		UserID:       userID,
		PrizeID:      prizeID,
		VariantID:    variantID,
		CoinPrice:    item.CoinPrice,
		Timestamp:    time.Now(),
	})

	s.logger.Info("Prize redeemed",
		zap.String("user_id", userID),
		zap.String("prize_id", prizeID),
		zap.String("variant_id", variantID),
	)
	return redemption, nil
}

func (s *catalogServiceImpl) publishEvent(ctx context.Context, key string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

// annotatePrize derives the per-item UI state from the variant rules.
func annotatePrize(item *models.CatalogItem) models.CatalogItemView {
	view := models.CatalogItemView{
		CatalogItem:   *item,
		HasStockIssue: HasStockIssue(item),
	}
	view.Redeemable = !view.HasStockIssue
	if def := PickDefaultVariant(item.Variants); def != nil {
		view.DefaultVariantID = def.ID
	}
	return view
}

// upstreamServiceError maps a client failure to a ServiceError, passing the
// platform's human-readable message through verbatim when there is one.
func upstreamServiceError(logger *zap.Logger, logMsg string, err error) *ServiceError {
	var upstream *clients.UpstreamError
	if errors.As(err, &upstream) {
		logger.Warn(logMsg, zap.Int("upstream_status", upstream.StatusCode), zap.String("upstream_message", upstream.Message))
		return &ServiceError{StatusCode: upstream.StatusCode, Message: upstream.Message}
	}
	logger.Error(logMsg, zap.Error(err))
	return &ServiceError{StatusCode: 502, Message: "The recognition platform is unavailable. Please try again."}
}
