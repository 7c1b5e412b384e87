// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/feedback-page/db"
)

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver(db.DialectSQLite, sqlx.QUESTION)
}

// SQLStore keeps values in kv_store and index members in kv_index.
// Queries are written with ? placeholders and rebound per driver.
type SQLStore struct {
	conn *sqlx.DB
}

type kvRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// OpenSQL connects with the named driver ("sqlite" or "postgres") and
// creates the schema.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	// SQLite allows one writer; a single connection serialises writes
	// instead of failing them with SQLITE_BUSY.
	if driver == db.DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := db.CreateSchema(conn.DB, driver); err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLStore{conn: conn}, nil
}

// NewSQLStore wraps an existing connection whose schema is already in place.
func NewSQLStore(conn *sqlx.DB) *SQLStore {
	return &SQLStore{conn: conn}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.conn.GetContext(ctx, &value, s.conn.Rebind(`SELECT value FROM kv_store WHERE key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	found := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In(`SELECT key, value FROM kv_store WHERE key IN (?)`, keys)
	if err != nil {
		return nil, fmt.Errorf("build batch get: %w", err)
	}

	var rows []kvRow
	if err := s.conn.SelectContext(ctx, &rows, s.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("batch get: %w", err)
	}
	for _, row := range rows {
		found[row.Key] = row.Value
	}
	return found, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	// Passed as a string: lib/pq would send []byte as bytea, which JSONB rejects.
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`), key, string(value))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`DELETE FROM kv_store WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var (
		query string
		args  []any
	)
	switch s.conn.DriverName() {
	case db.DialectPostgres:
		query = `SELECT key, value FROM kv_store WHERE starts_with(key, ?) ORDER BY key`
		args = []any{prefix}
	default:
		// LIKE is case-insensitive in SQLite, so compare the leading characters.
		query = `SELECT key, value FROM kv_store WHERE substr(key, 1, ?) = ? ORDER BY key`
		args = []any{utf8.RuneCountInString(prefix), prefix}
	}

	var rows []kvRow
	if err := s.conn.SelectContext(ctx, &rows, s.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("scan prefix %s: %w", prefix, err)
	}

	values := make([][]byte, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Value)
	}
	return values, nil
}

func (s *SQLStore) AddToIndex(ctx context.Context, index, member string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`
		INSERT INTO kv_index (index_key, member) VALUES (?, ?)
		ON CONFLICT (index_key, member) DO NOTHING
	`), index, member)
	if err != nil {
		return fmt.Errorf("add %s to index %s: %w", member, index, err)
	}
	return nil
}

func (s *SQLStore) IndexMembers(ctx context.Context, index string) ([]string, error) {
	members := []string{}
	err := s.conn.SelectContext(ctx, &members,
		s.conn.Rebind(`SELECT member FROM kv_index WHERE index_key = ? ORDER BY seq`), index)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", index, err)
	}
	return members, nil
}

func (s *SQLStore) Close() error {
	return s.conn.Close()
}
