package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/models"
)

// PraiseSessionView is the session state plus the derived flags the
// frontend renders on every step.
type PraiseSessionView struct {
	*PraiseForm
	CanProceed  bool    `json:"can_proceed"`
	ProgressPct float64 `json:"progress"`
}

// PraiseService drives the 5-step send-praise flow over server-side
// sessions and submits the finished form to the platform.
type PraiseService interface {
	Start(ctx context.Context, userID string) (*PraiseSessionView, *ServiceError)
	Get(ctx context.Context, userID, sessionID string) (*PraiseSessionView, *ServiceError)
	Next(ctx context.Context, userID, sessionID string, input models.PraiseStepInput) (*PraiseSessionView, *ServiceError)
	Back(ctx context.Context, userID, sessionID string) (*PraiseSessionView, *ServiceError)
	Submit(ctx context.Context, userID, sessionID string) (*models.Compliment, *ServiceError)
}

type praiseServiceImpl struct {
	platform  clients.PlatformClient
	sessions  PraiseSessionStore
	cache     Cache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPraiseService creates a PraiseService.
func NewPraiseService(platform clients.PlatformClient, sessions PraiseSessionStore, cache Cache, publisher EventPublisher, logger *zap.Logger) PraiseService {
	return &praiseServiceImpl{
		platform:  platform,
		sessions:  sessions,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Start opens a fresh form session at the recipient step.
func (s *praiseServiceImpl) Start(ctx context.Context, userID string) (*PraiseSessionView, *ServiceError) {
	form := NewPraiseForm(uuid.NewString())
	if err := s.sessions.Save(ctx, userID, form); err != nil {
		s.logger.Error("Failed to save praise session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 503, Message: "Could not open the praise form. Please try again."}
	}
	return sessionView(form), nil
}

// Get returns the current session state.
func (s *praiseServiceImpl) Get(ctx context.Context, userID, sessionID string) (*PraiseSessionView, *ServiceError) {
	form, svcErr := s.load(ctx, userID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return sessionView(form), nil
}

// Next applies the step input and advances when the current step's gate
// passes. A failed gate keeps the step and surfaces the field error with a
// 422, never a silent advancement.
func (s *praiseServiceImpl) Next(ctx context.Context, userID, sessionID string, input models.PraiseStepInput) (*PraiseSessionView, *ServiceError) {
	form, svcErr := s.load(ctx, userID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	form.Apply(input)
	advanced := form.Next()
	if err := s.sessions.Save(ctx, userID, form); err != nil {
		s.logger.Error("Failed to save praise session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 503, Message: "Could not save your progress. Please try again."}
	}
	if !advanced {
		return nil, &ServiceError{StatusCode: 422, Message: firstError(form)}
	}
	return sessionView(form), nil
}

// Back steps backwards and clears surfaced errors.
func (s *praiseServiceImpl) Back(ctx context.Context, userID, sessionID string) (*PraiseSessionView, *ServiceError) {
	form, svcErr := s.load(ctx, userID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	form.Back()
	if err := s.sessions.Save(ctx, userID, form); err != nil {
		s.logger.Error("Failed to save praise session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 503, Message: "Could not save your progress. Please try again."}
	}
	return sessionView(form), nil
}

// Submit requires whole-form validity and forwards to the platform. On
// success the session is closed and the balance/compliment caches are
// invalidated; on upstream rejection (e.g. insufficient balance) the
// session stays on the confirm step so the user can correct and retry.
func (s *praiseServiceImpl) Submit(ctx context.Context, userID, sessionID string) (*models.Compliment, *ServiceError) {
	form, svcErr := s.load(ctx, userID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	if form.Step != StepConfirm {
		return nil, &ServiceError{StatusCode: 409, Message: "Finish the remaining steps before submitting"}
	}
	if err := form.ValidateAll(); err != nil {
		return nil, &ServiceError{StatusCode: 422, Message: "The form is incomplete. Review the previous steps."}
	}

	compliment, err := s.platform.SendCompliment(ctx, userID, form.Request())
	if err != nil {
		return nil, upstreamServiceError(s.logger, "Compliment rejected", err)
	}

	if err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		s.logger.Warn("Failed to delete praise session", zap.Error(err))
	}
	s.cache.InvalidateTags(ctx, TagBalance, TagCompliments)
	s.publishEvent(ctx, userID, models.ComplimentSentEvent{
		EventType:    models.EventComplimentSent,
		ComplimentID: compliment.ID,
		SenderID:     userID,
		ReceiverID:   compliment.ReceiverID,
		ValueID:      compliment.ValueID,
		Coins:        compliment.Coins,
		Timestamp:    time.Now(),
	})

	s.logger.Info("Compliment sent",
		zap.String("sender_id", userID),
		zap.String("receiver_id", compliment.ReceiverID),
		zap.Int64("coins", compliment.Coins),
	)
	return compliment, nil
}

func (s *praiseServiceImpl) load(ctx context.Context, userID, sessionID string) (*PraiseForm, *ServiceError) {
	form, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		s.logger.Error("Failed to load praise session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 503, Message: "Could not load the praise form. Please try again."}
	}
	if form == nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Praise form session not found or expired"}
	}
	return form, nil
}

func (s *praiseServiceImpl) publishEvent(ctx context.Context, key string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.Error("Failed to publish event", zap.Error(err))
	}
}

func sessionView(form *PraiseForm) *PraiseSessionView {
	return &PraiseSessionView{
		PraiseForm:  form,
		CanProceed:  form.CanProceed(),
		ProgressPct: form.Progress(),
	}
}

func firstError(form *PraiseForm) string {
	for _, msg := range form.Errors {
		return msg
	}
	return "Form is incomplete"
}
