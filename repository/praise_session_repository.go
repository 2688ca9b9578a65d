package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kudoshq/recognition-bff/services"
)

// DefaultSessionTTL is how long an abandoned praise form survives.
const DefaultSessionTTL = 30 * time.Minute

type redisPraiseSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPraiseSessionStore creates a Redis-backed store for open praise form
// sessions, so the stateless frontend can drive the step flow across
// requests. Sessions are scoped to their owning user.
func NewPraiseSessionStore(client *redis.Client, ttl time.Duration) services.PraiseSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &redisPraiseSessionStore{client: client, ttl: ttl}
}

func (r *redisPraiseSessionStore) key(userID, sessionID string) string {
	return fmt.Sprintf("bff:praise:session:%s:%s", userID, sessionID)
}

// Get returns the session, or (nil, nil) when it does not exist or expired.
func (r *redisPraiseSessionStore) Get(ctx context.Context, userID, sessionID string) (*services.PraiseForm, error) {
	data, err := r.client.Get(ctx, r.key(userID, sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var form services.PraiseForm
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *redisPraiseSessionStore) Save(ctx context.Context, userID string, form *services.PraiseForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(userID, form.ID), data, r.ttl).Err()
}

func (r *redisPraiseSessionStore) Delete(ctx context.Context, userID, sessionID string) error {
	return r.client.Del(ctx, r.key(userID, sessionID)).Err()
}
