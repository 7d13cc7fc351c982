// File: session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lendhub/utils"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "clientSession:"

// defaultSessionTTL bounds sessions whose token carries no exp claim.
const defaultSessionTTL = 24 * time.Hour

// RedisStore persists the session in Redis so a restarted client stays
// signed in. The key TTL tracks the token's own expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store scoped to one client identity key, e.g. a
// device or install ID, so multiple clients can share one Redis.
func NewRedisStore(client *redis.Client, clientID string) *RedisStore {
	return &RedisStore{client: client, key: sessionKeyPrefix + clientID}
}

func (r *RedisStore) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := defaultSessionTTL
	if claims, err := utils.InspectToken(sess.Token); err == nil && !claims.ExpiresAt.IsZero() {
		if until := time.Until(claims.ExpiresAt); until > 0 {
			ttl = until
		}
	}

	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
