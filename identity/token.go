// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/feedback-page/models"
)

var ErrInvalidToken = errors.New("invalid access token")

// roleAuthenticated is the role Supabase puts in user session tokens; the
// anon key is also a JWT but carries role "anon".
const roleAuthenticated = "authenticated"

type supabaseClaims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier resolves user access tokens. With a JWT secret it verifies
// tokens locally; otherwise it asks the identity provider.
type Verifier struct {
	secret []byte
	client *Client
}

func NewVerifier(jwtSecret string, client *Client) *Verifier {
	v := &Verifier{client: client}
	if jwtSecret != "" {
		v.secret = []byte(jwtSecret)
	}
	return v
}

func (v *Verifier) Verify(ctx context.Context, token string) (models.User, error) {
	if v.secret != nil {
		return v.verifyLocal(token)
	}
	if v.client == nil {
		return models.User{}, ErrNotConfigured
	}

	user, err := v.client.GetUser(ctx, token)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return models.User{}, fmt.Errorf("%w: %s", ErrInvalidToken, apiErr.Message)
	}
	return user, err
}

func (v *Verifier) verifyLocal(token string) (models.User, error) {
	claims := &supabaseClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != roleAuthenticated || claims.Subject == "" {
		return models.User{}, fmt.Errorf("%w: not a user session", ErrInvalidToken)
	}

	return models.User{
		ID:           claims.Subject,
		Email:        claims.Email,
		UserMetadata: claims.UserMetadata,
	}, nil
}
