// Package rediskv persists key-value entries in redis.
package rediskv

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/taskistry/collabo/core"
)

type store struct {
	client *redis.Client
}

var _ core.KVStore = (*store)(nil) // interface compliance check

func NewStore(conf *core.Config) core.KVStore {
	return &store{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		}),
	}
}

// Get returns (nil, nil) when the key is absent.
func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
