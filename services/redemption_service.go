package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/models"
)

// RedemptionService serves the redemption listing and detail views with
// derived lifecycle state, and handles user-initiated cancellations.
type RedemptionService interface {
	List(ctx context.Context, userID string, filter FilterState) (*models.ListResult, *ServiceError)
	Get(ctx context.Context, userID, redemptionID string) (*models.RedemptionView, *ServiceError)
	Cancel(ctx context.Context, userID, redemptionID, reason string) (*models.CancelResult, *ServiceError)
}

type redemptionServiceImpl struct {
	platform  clients.PlatformClient
	cache     Cache
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewRedemptionService creates a RedemptionService.
func NewRedemptionService(platform clients.PlatformClient, cache Cache, publisher EventPublisher, logger *zap.Logger) RedemptionService {
	return &redemptionServiceImpl{
		platform:  platform,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List builds the normalized query from the filter state and returns the
// matching page annotated with derived state. Pages are cached per
// normalized query under the redemptions tag.
func (s *redemptionServiceImpl) List(ctx context.Context, userID string, filter FilterState) (*models.ListResult, *ServiceError) {
	query := filter.BuildQuery(s.now())
	key := listCacheKey(userID, query)

	var items []models.Redemption
	if !s.cache.GetJSON(ctx, TagRedemptions, key, &items) {
		fetched, err := s.platform.ListRedemptions(ctx, userID, query)
		if err != nil {
			return nil, upstreamServiceError(s.logger, "Failed to list redemptions", err)
		}
		items = fetched
		s.cache.SetJSON(ctx, TagRedemptions, key, items)
	}

	now := s.now()
	views := make([]models.RedemptionView, 0, len(items))
	for i := range items {
		views = append(views, s.annotate(&items[i], now))
	}

	return &models.ListResult{
		Items:   views,
		Offset:  query.Offset,
		Limit:   query.Limit,
		HasMore: len(items) == query.Limit,
	}, nil
}

// Get returns one redemption with its timeline and cancellation state.
func (s *redemptionServiceImpl) Get(ctx context.Context, userID, redemptionID string) (*models.RedemptionView, *ServiceError) {
	redemption, err := s.platform.GetRedemption(ctx, userID, redemptionID)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Failed to load redemption", err)
	}
	view := s.annotate(redemption, s.now())
	return &view, nil
}

// Cancel validates the reason, applies the local cancellation policy as a
// fast-fail, and forwards to the platform. A redemption whose status moved
// on server-side between load and cancel comes back as an upstream error
// with the platform's message; the local policy saying "cancellable" is
// never the final word.
func (s *redemptionServiceImpl) Cancel(ctx context.Context, userID, redemptionID, reason string) (*models.CancelResult, *ServiceError) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "A cancellation reason is required"}
	}

	redemption, err := s.platform.GetRedemption(ctx, userID, redemptionID)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Failed to load redemption", err)
	}
	if !CanCancel(redemption, s.now()) {
		return nil, &ServiceError{StatusCode: 409, Message: "This redemption can no longer be cancelled"}
	}

	refunded, err := s.platform.CancelRedemption(ctx, userID, redemptionID, reason)
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Cancellation rejected", err)
	}

	s.cache.InvalidateTags(ctx, TagBalance, TagRedemptions)
	s.publishEvent(ctx, userID, models.RedemptionCancelledEvent{
		EventType:     models.EventRedemptionCancelled,
		RedemptionID:  redemptionID,
		UserID:        userID,
		Reason:        reason,
		RefundedCoins: refunded,
		Timestamp:     time.Now(),
	})

	s.logger.Info("Redemption cancelled",
		zap.String("user_id", userID),
		zap.String("redemption_id", redemptionID),
		zap.Int64("refunded_coins", refunded),
	)
	return &models.CancelResult{
		RefundedCoins:        refunded,
		RedirectAfterSeconds: RedirectCountdownSeconds,
	}, nil
}

func (s *redemptionServiceImpl) publishEvent(ctx context.Context, key string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

// annotate derives the per-redemption UI state: timeline (or voided flag),
// progress and cancellation window.
func (s *redemptionServiceImpl) annotate(r *models.Redemption, now time.Time) models.RedemptionView {
	view := models.RedemptionView{
		Redemption: *r,
		Voided:     IsVoided(r),
		CanCancel:  CanCancel(r, now),
	}
	if !view.Voided {
		view.Timeline = ProjectTimeline(r)
		view.Progress = ProgressPercentage(view.Timeline)
	}
	view.CancelDeadline = CancelDeadline(r, now)
	return view
}

// listCacheKey hashes the normalized query so cache keys stay bounded no
// matter what the user types into search.
func listCacheKey(userID string, q models.ListQuery) string {
	raw, _ := json.Marshal(q)
	sum := sha1.Sum(raw)
	return userID + ":" + hex.EncodeToString(sum[:])
}
