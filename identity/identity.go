// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielhkuo/feedback-page/models"
)

var ErrNotConfigured = errors.New("identity provider not configured")

// APIError is a rejection reported by the identity provider, e.g. a
// duplicate email or a weak password.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the Supabase Auth (GoTrue) REST API with the service
// role key.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(baseURL, serviceRoleKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, serviceKey: serviceRoleKey, http: httpClient}
}

type createUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	UserMetadata map[string]any `json:"user_metadata"`
	EmailConfirm bool           `json:"email_confirm"`
}

// CreateUser registers a confirmed user. No mail server is involved, so the
// email is marked confirmed immediately.
func (c *Client) CreateUser(ctx context.Context, email, password, name string) (models.User, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return models.User{}, ErrNotConfigured
	}

	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.serviceKey, createUserRequest{
		Email:        email,
		Password:     password,
		UserMetadata: map[string]any{"name": name},
		EmailConfirm: true,
	}, &user)
	return user, err
}

// GetUser resolves an access token to its user.
func (c *Client) GetUser(ctx context.Context, accessToken string) (models.User, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return models.User{}, ErrNotConfigured
	}

	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	return user, err
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the human-readable message out of a GoTrue error body;
// the field name differs between endpoints and versions.
func errorMessage(body []byte, fallback string) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		for _, m := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
			if m != "" {
				return m
			}
		}
	}
	return fallback
}
