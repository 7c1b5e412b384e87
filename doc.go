// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Feedback Page API server.

Feedback Page routes customer ratings: low ratings (1-3) are captured as
private feedback for the business, high ratings (4-5) are pointed at public
review platforms with an optional newsletter/rewards opt-in.

# Starting the Server

With no configuration the server stores data in ./feedback-page.db:

	go run .

Or pick a backend:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .
	go run . -t redis -d redis://localhost:6379/0

Settings may also live in a .env file (see -env-file).

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or redis (default: sqlite)
  - DATABASE_URL (-d): Connection string
  - BASE_PATH (--base-path): Route prefix (default: /api)
  - ANON_KEY (--anon-key): Bearer token required on API routes
  - SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY, SUPABASE_JWT_SECRET: identity provider
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM: notifications
  - LOG_FILE, LOG_LEVEL, LOG_FORMAT: logging

# Architecture

  - handlers: HTTP request handlers (business, locations, feedback, opt-ins, billing)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer checks, JSON helpers
  - store: Typed entity storage and index maintenance
  - kv: Key-value backends (SQLite, PostgreSQL, Redis)
  - db: SQL schema creation
  - identity: Supabase Auth client and token verification
  - notify: SMTP owner notifications and auto-replies
  - client: Typed Go client for the API
  - rating: Rating routing, session state and submission flows
  - cmd/kiosk: Terminal rating kiosk built on client and rating

See package documentation for each component.
*/
package main
