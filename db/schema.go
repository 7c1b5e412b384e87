// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported SQL dialects, named after their database/sql driver.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// CreateSchema creates the key-value tables for the given dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Entities (business:, location:, feedback:, opt-in:)
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL
);

-- Secondary indexes: one row per (index, member), appended atomically
CREATE TABLE IF NOT EXISTS kv_index (
    seq BIGSERIAL PRIMARY KEY,
    index_key TEXT NOT NULL,
    member TEXT NOT NULL,
    UNIQUE (index_key, member)
);

CREATE INDEX IF NOT EXISTS idx_kv_index_index_key ON kv_index(index_key);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS kv_index (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    index_key TEXT NOT NULL,
    member TEXT NOT NULL,
    UNIQUE (index_key, member)
);

CREATE INDEX IF NOT EXISTS idx_kv_index_index_key ON kv_index(index_key);
`
