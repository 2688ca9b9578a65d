package services

import "context"

// Cache tags. Mutations return the tags they dirtied and the caller applies
// them: invalidation is explicit message passing, not a hidden global.
const (
	TagCatalog     = "catalog"
	TagRedemptions = "redemptions"
	TagBalance     = "balance"
	TagCompliments = "compliments"
)

// Cache is the read-through, tag-invalidated cache the services consume.
// Implementations must treat failures as misses; a broken cache never
// breaks a request.
type Cache interface {
	GetJSON(ctx context.Context, tag, key string, out interface{}) bool
	SetJSON(ctx context.Context, tag, key string, value interface{})
	InvalidateTags(ctx context.Context, tags ...string)
}

// EventPublisher publishes domain events. Publish failures must be
// swallowed by callers; eventing never fails a user mutation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
}

// PraiseSessionStore persists open praise form sessions across requests.
// Get returns (nil, nil) for a missing or expired session.
type PraiseSessionStore interface {
	Get(ctx context.Context, userID, sessionID string) (*PraiseForm, error)
	Save(ctx context.Context, userID string, form *PraiseForm) error
	Delete(ctx context.Context, userID, sessionID string) error
}

// ServiceError is a typed error with an HTTP status code, the contract
// between services and controllers.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }
