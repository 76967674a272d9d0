// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Premios polls server.

Questions are published at a given time and carry a set of choices.
Visitors browse the latest published questions, vote for one choice per
submission, and see the tallies.

# Starting the Server

The only required setting is the admin key:

	ADMIN_KEY=... go run .

Or with flags:

	go run . -p 8000 -t postgres -d "postgres://..." -admin-key ...

Settings may also live in a .env file in the working directory.

# Configuration

  - ADMIN_KEY (-admin-key): Secret for the admin API (required)
  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:polls.db)
  - LOG_LEVEL (-log-level): debug, info, warn, error (default: info)

# Architecture

  - handlers: public pages, voting, and the admin API
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, metrics, admin guard, CORS, JSON helpers
  - views: embedded HTML templates
  - models: domain and request/response types
  - auth: admin key validation
  - db: connections and schema creation
  - cliparse: Configuration parsing
*/
package main
