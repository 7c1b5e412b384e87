// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-page/auth"
	"github.com/danielhkuo/feedback-page/models"
)

// TokenVerifier resolves a user access token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (models.User, error)
}

type userKey struct{}

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

// RequireAnonKey rejects requests whose bearer token is not the project's
// anon key. An empty anonKey disables the check.
func RequireAnonKey(anonKey string, next http.HandlerFunc) http.HandlerFunc {
	if anonKey == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}
		if err := auth.ValidateAnonKey(token, anonKey); err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next(w, r)
	}
}

// RequireUser resolves the bearer token to a user and stores it on the
// request context.
func RequireUser(verifier TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := verifier.Verify(r.Context(), token)
		if err != nil {
			slog.Warn("access token rejected", "request_id", RequestID(r.Context()), "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}
