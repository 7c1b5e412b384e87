// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/feedback-page/db"
)

// Backend names accepted by Open.
const (
	TypeSQLite   = db.DialectSQLite
	TypePostgres = db.DialectPostgres
	TypeRedis    = "redis"
)

var ErrNotFound = errors.New("kv: key not found")

// Store is a schemaless key-value store with prefix scans and append-only
// secondary indexes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the values found for keys; missing keys are absent
	// from the map.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns the values of all keys starting with prefix,
	// ordered by key.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)

	// AddToIndex atomically adds member to the named index. Adding an
	// existing member is a no-op.
	AddToIndex(ctx context.Context, index, member string) error
	IndexMembers(ctx context.Context, index string) ([]string, error)

	Close() error
}

// Open connects to the backend named by storeType.
func Open(storeType, url string) (Store, error) {
	switch storeType {
	case TypeSQLite, TypePostgres:
		return OpenSQL(storeType, url)
	case TypeRedis:
		return OpenRedis(url)
	default:
		return nil, fmt.Errorf("unsupported store type %q (want sqlite, postgres or redis)", storeType)
	}
}

// GetJSON decodes the value at key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
