// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires handlers to Go 1.22 method patterns under the
configured base path (default /api).

	mux := router.NewRouter(st, cfg, router.Services{
		Notifier: notifier,
		Users:    identityClient,
		Verifier: verifier,
	})
	server := http.Server{Handler: middleware.CORS(mux)}

Every route except health and the payment webhook requires the project anon
key as its bearer token. Checkout requires a user access token instead.
*/
package router
