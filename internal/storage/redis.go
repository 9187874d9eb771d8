package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"recipeparser/internal/domain"
)

const statsTTL = 24 * time.Hour

// RedisStore caches the latest stats row per parser so hot reads skip
// the database. Entries expire; the database row stays authoritative.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func statsKey(parserName string) string {
	return fmt.Sprintf("parserstats:%s", parserName)
}

// GetLatest returns the cached stats row, or (nil, nil) on a miss.
func (s *RedisStore) GetLatest(ctx context.Context, parserName string) (*domain.ParserStats, error) {
	val, err := s.client.Get(ctx, statsKey(parserName)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st domain.ParserStats
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RedisStore) SetLatest(ctx context.Context, st domain.ParserStats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsKey(st.ParserName), data, statsTTL).Err()
}
