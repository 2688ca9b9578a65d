package services

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/kudoshq/recognition-bff/models"
)

// --- Mock platform client ---

type MockPlatformClient struct {
	mock.Mock
}

func (m *MockPlatformClient) ListPrizes(ctx context.Context, userID string) ([]models.CatalogItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogItem), args.Error(1)
}

func (m *MockPlatformClient) GetPrize(ctx context.Context, userID, prizeID string) (*models.CatalogItem, error) {
	args := m.Called(ctx, userID, prizeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CatalogItem), args.Error(1)
}

func (m *MockPlatformClient) Redeem(ctx context.Context, userID, prizeID, variantID string) (*models.Redemption, error) {
	args := m.Called(ctx, userID, prizeID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Redemption), args.Error(1)
}

func (m *MockPlatformClient) ListRedemptions(ctx context.Context, userID string, q models.ListQuery) ([]models.Redemption, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Redemption), args.Error(1)
}

func (m *MockPlatformClient) GetRedemption(ctx context.Context, userID, redemptionID string) (*models.Redemption, error) {
	args := m.Called(ctx, userID, redemptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Redemption), args.Error(1)
}

func (m *MockPlatformClient) CancelRedemption(ctx context.Context, userID, redemptionID, reason string) (int64, error) {
	args := m.Called(ctx, userID, redemptionID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlatformClient) UpdateRedemptionStatus(ctx context.Context, userID, redemptionID, status string) error {
	args := m.Called(ctx, userID, redemptionID, status)
	return args.Error(0)
}

func (m *MockPlatformClient) GetBalance(ctx context.Context, userID string) (*models.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockPlatformClient) SendCompliment(ctx context.Context, userID string, req models.SendComplimentRequest) (*models.Compliment, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Compliment), args.Error(1)
}

func (m *MockPlatformClient) CreatePrize(ctx context.Context, userID string, body []byte) ([]byte, int, error) {
	args := m.Called(ctx, userID, body)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

func (m *MockPlatformClient) UpdatePrize(ctx context.Context, userID, prizeID string, body []byte) ([]byte, int, error) {
	args := m.Called(ctx, userID, prizeID, body)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

// --- In-memory fakes for the side-effect collaborators ---

type fakeCache struct {
	store       map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(_ context.Context, tag, key string, out interface{}) bool {
	raw, ok := c.store[tag+":"+key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *fakeCache) SetJSON(_ context.Context, tag, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.store[tag+":"+key] = raw
}

func (c *fakeCache) InvalidateTags(_ context.Context, tags ...string) {
	c.invalidated = append(c.invalidated, tags...)
}

type publishedEvent struct {
	key   string
	event interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, event interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{key: key, event: event})
	return nil
}

type fakeSessionStore struct {
	forms   map[string]*PraiseForm
	getErr  error
	saveErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{forms: make(map[string]*PraiseForm)}
}

func (s *fakeSessionStore) Get(_ context.Context, userID, sessionID string) (*PraiseForm, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.forms[userID+":"+sessionID], nil
}

func (s *fakeSessionStore) Save(_ context.Context, userID string, form *PraiseForm) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.forms[userID+":"+form.ID] = form
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, userID, sessionID string) error {
	delete(s.forms, userID+":"+sessionID)
	return nil
}
