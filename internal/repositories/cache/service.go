package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardkeeper/internal/services/card"
	keys "cardkeeper/internal/utils/cache"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps the latest card store snapshot of each user in Redis.
type SnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSnapshotCache(client redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
	}
}

func snapshotKey(userID uint) string {
	return keys.GenerateKey(keys.EntityCard, keys.KeyUser, userID)
}

// Publish stores state as the user's latest snapshot.
func (s *SnapshotCache) Publish(ctx context.Context, userID uint, state card.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal card snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey(userID), data, s.ttl).Err()
}

// Get returns the user's latest snapshot and whether one was cached.
func (s *SnapshotCache) Get(ctx context.Context, userID uint) (card.State, bool, error) {
	data, err := s.client.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return card.State{}, false, nil
		}
		return card.State{}, false, fmt.Errorf("failed to get card snapshot: %w", err)
	}

	var state card.State
	if err := json.Unmarshal(data, &state); err != nil {
		return card.State{}, false, fmt.Errorf("failed to unmarshal card snapshot: %w", err)
	}
	return state, true, nil
}
