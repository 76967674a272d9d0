// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open supports two backends:

	conn, err := db.Open(db.TypeSQLite, "file:polls.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite (modernc.org/sqlite) is the default. It is opened with foreign keys
enabled and a single connection, so an in-memory database ("file::memory:")
lives as long as the pool does. Postgres uses github.com/lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - question: prompt text and publication timestamp
  - choice: answer options with a vote counter (CHECK votes >= 0)

# Relationships

	question 1──* choice

The foreign key uses ON DELETE CASCADE.
*/
package db
