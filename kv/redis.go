// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-redis/redis/v8"
)

// Index sets live under their own namespace so prefix scans over entity
// keys never see them.
const redisIndexNamespace = "index:"

// RedisStore keeps values as plain strings and indexes as sets.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis accepts a redis:// URL or a bare host:port.
func OpenRedis(url string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(url, "://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: url}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	found := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("batch get: %w", err)
	}
	for i, v := range values {
		if str, ok := v.(string); ok {
			found[keys[i]] = []byte(str)
		}
	}
	return found, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan prefix %s: %w", prefix, err)
	}
	slices.Sort(keys)
	keys = slices.Compact(keys) // SCAN may return a key more than once

	found, err := s.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	values := make([][]byte, 0, len(found))
	for _, key := range keys {
		if v, ok := found[key]; ok {
			values = append(values, v)
		}
	}
	return values, nil
}

func (s *RedisStore) AddToIndex(ctx context.Context, index, member string) error {
	if err := s.client.SAdd(ctx, redisIndexNamespace+index, member).Err(); err != nil {
		return fmt.Errorf("add %s to index %s: %w", member, index, err)
	}
	return nil
}

// IndexMembers returns members sorted lexically; sets carry no insertion order.
func (s *RedisStore) IndexMembers(ctx context.Context, index string) ([]string, error) {
	members, err := s.client.SMembers(ctx, redisIndexNamespace+index).Result()
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", index, err)
	}
	slices.Sort(members)
	return members, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
