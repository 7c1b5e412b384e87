// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Precedence

CLI flags, then environment variables, then the env file (-env-file,
default .env; a missing file is ignored), then defaults. Variables already
in the environment are never overwritten by the file.

# CLI Flags

	-p                 Server port (PORT, default 3318)
	-t                 Store type: sqlite, postgres, redis (DATABASE_TYPE, default sqlite)
	-d                 Database URL (DATABASE_URL, default file:feedback-page.db for sqlite)
	--base-path        Route prefix (BASE_PATH, default /api)
	--anon-key         Public bearer token (ANON_KEY)
	--supabase-url     Identity provider URL (SUPABASE_URL)
	--service-role-key Identity provider admin key (SUPABASE_SERVICE_ROLE_KEY)
	--jwt-secret       Access token secret (SUPABASE_JWT_SECRET)
	--smtp-host, --smtp-port, --smtp-user, --smtp-password, --smtp-from
	--log-file, --log-level, --log-format

# Validation

ParseFlags returns an error for an unknown store type, a non-numeric port,
or a postgres/redis store without a URL.
*/
package cliparse
