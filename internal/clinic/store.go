package clinic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const profileKey = "clinic:profile"

// Store persists the clinic profile in Redis.
type Store struct {
	redis *redis.Client
}

// NewStore creates a clinic profile store.
func NewStore(redisClient *redis.Client) *Store {
	if redisClient == nil {
		panic("clinic: redis client required")
	}
	return &Store{redis: redisClient}
}

// Get retrieves the profile, returning the default when none is saved.
func (s *Store) Get(ctx context.Context) (*Profile, error) {
	data, err := s.redis.Get(ctx, profileKey).Bytes()
	if err == redis.Nil {
		return DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("clinic: get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("clinic: unmarshal profile: %w", err)
	}
	return &p, nil
}

// Set saves the profile.
func (s *Store) Set(ctx context.Context, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("clinic: marshal profile: %w", err)
	}
	if err := s.redis.Set(ctx, profileKey, data, 0).Err(); err != nil {
		return fmt.Errorf("clinic: set profile: %w", err)
	}
	return nil
}
