// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request ID is taken from X-Request-ID when the
caller sends one, generated otherwise, and echoed in the response.

# Bearer Checks

	middleware.RequireAnonKey(cfg.AnonKey, handler)
	middleware.RequireUser(verifier, handler)

RequireAnonKey compares the bearer token with the project's anon key.
RequireUser resolves a user access token and stores the user on the request
context; read it back with UserFromContext.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Errors are written as {"error": "message"}.
*/
package middleware
