// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n random characters from [0-9a-z]
func RandomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36Chars)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random suffix: %w", err)
		}
		b[i] = base36Chars[idx.Int64()]
	}
	return string(b), nil
}

// NewLocationID returns loc_<unix-ms>_<9 chars>
func NewLocationID(now time.Time) (string, error) {
	suffix, err := RandomBase36(9)
	if err != nil {
		return "", err
	}
	return "loc_" + millis(now) + "_" + suffix, nil
}

// NewFeedbackID returns <businessID>:<unix-ms>:<9 chars>
func NewFeedbackID(businessID string, now time.Time) (string, error) {
	suffix, err := RandomBase36(9)
	if err != nil {
		return "", err
	}
	return businessID + ":" + millis(now) + ":" + suffix, nil
}

// NewOptInID returns <businessID>:opt-in:<unix-ms>:<6 chars>
// The suffix keeps two opt-ins in the same millisecond apart.
func NewOptInID(businessID string, now time.Time) (string, error) {
	suffix, err := RandomBase36(6)
	if err != nil {
		return "", err
	}
	return businessID + ":opt-in:" + millis(now) + ":" + suffix, nil
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// ValidateAnonKey compares the presented token with the configured anon key
// in constant time
func ValidateAnonKey(token, anonKey string) error {
	if !hmac.Equal([]byte(token), []byte(anonKey)) {
		return ErrInvalidAPIKey
	}
	return nil
}
