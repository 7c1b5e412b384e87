// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kv is the key-value persistence layer behind the API.

# Backends

Open picks a backend by name:

	s, err := kv.Open("sqlite", "file:feedback-page.db")
	s, err := kv.Open("postgres", "postgres://...")
	s, err := kv.Open("redis", "redis://localhost:6379/0")

SQLite and PostgreSQL share SQLStore (sqlx); Redis uses RedisStore (go-redis).

# Values

Values are opaque bytes, JSON by convention. GetJSON and SetJSON wrap the
encoding. Missing keys return ErrNotFound.

# Indexes

Per-business ID lists are kept as indexes rather than as JSON arrays in a
value. AddToIndex is a set-union append: a single INSERT ... ON CONFLICT DO
NOTHING in SQL, SADD in Redis. Concurrent appends to one index all survive.
*/
package kv
