// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity wraps the hosted identity provider (Supabase Auth).
//
// Client creates users with the service role key and resolves access tokens.
// Verifier checks a bearer token either locally against the project's JWT
// secret or, when no secret is configured, by asking the provider.
package identity
