// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a typed Go client for the Feedback Page API.

	c := client.New("http://localhost:3318/api", anonKey)
	fb, err := c.SubmitFeedback(ctx, models.SubmitFeedbackRequest{...})

Requests and responses use the models types. Any non-2xx response comes
back as *APIError carrying the server's error message; a 404 also matches
ErrNotFound. Calls use the caller's context and are never retried.
*/
package client
