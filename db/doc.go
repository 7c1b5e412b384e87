// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation for the SQL-backed key-value store.

# Schema Creation

CreateSchema initializes both tables for a dialect:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - kv_store: one JSON document per key (JSONB on PostgreSQL, TEXT on SQLite)
  - kv_index: (index_key, member) pairs backing per-business ID lists

kv_index has a UNIQUE (index_key, member) constraint, so appending a member is
a single INSERT ... ON CONFLICT DO NOTHING. Concurrent appends to the same
index never lose entries. The seq column preserves insertion order.
*/
package db
