// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and API key utilities.

# Record IDs

IDs embed the creation time in milliseconds plus a random base36 suffix:

	loc_1700000000123_k3j9x0a1b              // NewLocationID
	demo-business:1700000000123:k3j9x0a1b    // NewFeedbackID
	demo-business:opt-in:1700000000123:k3j9x0 // NewOptInID

# Bearer Tokens

All API calls carry "Authorization: Bearer <token>":

	token, err := auth.BearerToken(r.Header.Get("Authorization"))
	err = auth.ValidateAnonKey(token, cfg.AnonKey)

The anon key comparison is constant time. User access tokens are verified by
the identity package.
*/
package auth
