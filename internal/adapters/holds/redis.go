package holds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cinematicketing/internal/domain"
)

const indexKey = "seat_holds:index"

// redisHoldStore keeps one TTL-bound key per held seat plus a set
// indexing every hold ever placed, so expired entries can be swept.
type redisHoldStore struct {
	client *redis.Client
}

// NewRedisHoldStore returns a SeatHoldStore backed by the given Redis client.
func NewRedisHoldStore(client *redis.Client) domain.SeatHoldStore {
	return &redisHoldStore{client: client}
}

func holdKey(sessionID int64, seat domain.SeatSelection) string {
	return fmt.Sprintf("seat_hold:%d:%s", sessionID, seat)
}

func (s *redisHoldStore) Hold(ctx context.Context, sessionID int64, seat domain.SeatSelection, ttl time.Duration) (bool, error) {
	key := holdKey(sessionID, seat)
	ok, err := s.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to place seat hold: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := s.client.SAdd(ctx, indexKey, key).Err(); err != nil {
		return true, fmt.Errorf("failed to index seat hold: %w", err)
	}
	return true, nil
}

func (s *redisHoldStore) Release(ctx context.Context, sessionID int64, seat domain.SeatSelection) error {
	key := holdKey(sessionID, seat)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release seat hold: %w", err)
	}
	if err := s.client.SRem(ctx, indexKey, key).Err(); err != nil {
		return fmt.Errorf("failed to unindex seat hold: %w", err)
	}
	return nil
}

func (s *redisHoldStore) SweepExpired(ctx context.Context) (int64, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list seat holds: %w", err)
	}

	var removed int64
	for _, key := range keys {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to check seat hold %s: %w", key, err)
		}
		if exists > 0 {
			continue
		}
		if err := s.client.SRem(ctx, indexKey, key).Err(); err != nil {
			return removed, fmt.Errorf("failed to unindex seat hold %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}
