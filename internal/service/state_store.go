package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/CoolVinz/village-shop-sub001/pkg/database"
)

const stateTTL = 10 * time.Minute

// StateStore issues and consumes single-use LINE login state nonces.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// OAuthStateStore keeps single-use LINE login state nonces in Redis.
type OAuthStateStore struct {
	redis *database.Redis
}

// NewOAuthStateStore creates a new OAuth state store
func NewOAuthStateStore(redis *database.Redis) *OAuthStateStore {
	return &OAuthStateStore{redis: redis}
}

// Issue generates a random state and stores it with a TTL
func (s *OAuthStateStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(buf)

	key := fmt.Sprintf("oauth:state:%s", state)
	if err := s.redis.Client.Set(ctx, key, "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	return state, nil
}

// Consume verifies a state and deletes it so it cannot be replayed
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	key := fmt.Sprintf("oauth:state:%s", state)
	deleted, err := s.redis.Client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume state: %w", err)
	}

	return deleted > 0, nil
}
