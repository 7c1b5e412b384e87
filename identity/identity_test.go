// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testServiceKey = "service-role-key"

func TestCreateUser(t *testing.T) {
	var got createUserRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/admin/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("apikey") != testServiceKey {
			t.Errorf("apikey = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer "+testServiceKey {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"owner@example.com","user_metadata":{"name":"Owner"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, testServiceKey, nil)
	user, err := c.CreateUser(context.Background(), "owner@example.com", "hunter22", "Owner")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID != "user-1" || user.Email != "owner@example.com" {
		t.Errorf("user = %+v", user)
	}
	if !got.EmailConfirm {
		t.Error("expected email_confirm=true")
	}
	if got.UserMetadata["name"] != "Owner" {
		t.Errorf("user_metadata = %v", got.UserMetadata)
	}
}

func TestCreateUserProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":422,"msg":"A user with this email address has already been registered"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, testServiceKey, nil)
	_, err := c.CreateUser(context.Background(), "dup@example.com", "hunter22", "Dup")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "A user with this email address has already been registered" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClientNotConfigured(t *testing.T) {
	c := NewClient("", "", nil)
	if _, err := c.CreateUser(context.Background(), "a@b.c", "pw", "n"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	if got := errorMessage([]byte("<html>bad gateway</html>"), "502 Bad Gateway"); got != "502 Bad Gateway" {
		t.Errorf("got %q", got)
	}
	if got := errorMessage([]byte(`{"error_description":"expired"}`), "x"); got != "expired" {
		t.Errorf("got %q", got)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestVerifierLocal(t *testing.T) {
	const secret = "jwt-secret"
	v := NewVerifier(secret, nil)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:  "user session",
			token: signToken(t, secret, jwt.MapClaims{"sub": "user-1", "email": "o@example.com", "role": "authenticated", "exp": exp}),
		},
		{
			name:    "anon key",
			token:   signToken(t, secret, jwt.MapClaims{"role": "anon", "exp": exp}),
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   signToken(t, "other", jwt.MapClaims{"sub": "user-1", "role": "authenticated", "exp": exp}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   signToken(t, secret, jwt.MapClaims{"sub": "user-1", "role": "authenticated", "exp": time.Now().Add(-time.Hour).Unix()}),
			wantErr: true,
		},
		{
			name:    "no expiry",
			token:   signToken(t, secret, jwt.MapClaims{"sub": "user-1", "role": "authenticated"}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if user.ID != "user-1" || user.Email != "o@example.com" {
				t.Errorf("user = %+v", user)
			}
		})
	}
}

func TestVerifierRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Write([]byte(`{"id":"user-2","email":"r@example.com"}`))
	}))
	defer server.Close()

	v := NewVerifier("", NewClient(server.URL, testServiceKey, nil))

	user, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.ID != "user-2" {
		t.Errorf("user = %+v", user)
	}

	if _, err := v.Verify(context.Background(), "bad-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
