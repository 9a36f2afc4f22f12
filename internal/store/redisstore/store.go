package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const recentInputsKey = "input_history:recent"

// Store is a write-through mirror of the most recent raw user inputs.
type Store struct {
	client *redis.Client
	cap    int64
}

func New(addr, password string, db int, cap int64) *Store {
	if cap <= 0 {
		cap = 100
	}
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		cap: cap,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// PushInput prepends an input and trims the list to the configured cap.
func (s *Store) PushInput(ctx context.Context, input string) error {
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, recentInputsKey, input)
	pipe.LTrim(ctx, recentInputsKey, 0, s.cap-1)
	_, err := pipe.Exec(ctx)
	return err
}

// RecentInputs returns up to limit inputs, most recent first.
func (s *Store) RecentInputs(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 || limit > s.cap {
		limit = s.cap
	}
	return s.client.LRange(ctx, recentInputsKey, 0, limit-1).Result()
}
