// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		rating  int
		want    Destination
		wantErr error
	}{
		{1, DestinationFeedback, nil},
		{2, DestinationFeedback, nil},
		{3, DestinationFeedback, nil},
		{4, DestinationThankYou, nil},
		{5, DestinationThankYou, nil},
		{0, 0, ErrNoRating},
		{6, 0, ErrInvalidRating},
		{-1, 0, ErrInvalidRating},
	}

	for _, tt := range tests {
		got, err := Route(tt.rating)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "rating %d", tt.rating)
			continue
		}
		require.NoError(t, err, "rating %d", tt.rating)
		assert.Equal(t, tt.want, got, "rating %d", tt.rating)
	}
}

func TestDestinationString(t *testing.T) {
	assert.Equal(t, "feedback", DestinationFeedback.String())
	assert.Equal(t, "thank-you", DestinationThankYou.String())
	assert.Equal(t, "Destination(9)", Destination(9).String())
}

func TestSessionCanSubmit(t *testing.T) {
	s := NewSession("demo-business")
	assert.False(t, s.CanSubmit(), "no rating, not ready")

	require.NoError(t, s.Select(4))
	assert.False(t, s.CanSubmit(), "bootstrap pending")

	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrNotReady)

	s.Bootstrap(t.Context(), func(context.Context) error { return nil })
	assert.True(t, s.CanSubmit())

	require.NoError(t, s.Select(0))
	assert.False(t, s.CanSubmit(), "rating cleared")
	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrNoRating)
}

func TestSessionSelectRejectsOutOfRange(t *testing.T) {
	s := NewSession("b")
	require.NoError(t, s.Select(2))

	err := s.Select(7)
	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.Equal(t, 2, s.Rating(), "invalid selection must not replace the previous one")
}

func TestSessionSubmitRoutes(t *testing.T) {
	s := NewSession("b")
	s.Bootstrap(t.Context(), func(context.Context) error { return nil })

	require.NoError(t, s.Select(2))
	dest, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, DestinationFeedback, dest)

	require.NoError(t, s.Select(5))
	dest, err = s.Submit()
	require.NoError(t, err)
	assert.Equal(t, DestinationThankYou, dest)
}

func TestBootstrapResults(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := NewSession("b")
		assert.Equal(t, BootstrapOK, s.Bootstrap(t.Context(), func(context.Context) error { return nil }))
		assert.True(t, s.Ready())
		assert.Equal(t, BootstrapOK, s.BootstrapResult())
	})

	t.Run("failed", func(t *testing.T) {
		s := NewSession("b")
		res := s.Bootstrap(t.Context(), func(context.Context) error { return errors.New("500") })
		assert.Equal(t, BootstrapFailed, res)
		assert.True(t, s.Ready(), "a failed bootstrap still enables submission")
	})

	t.Run("timed out", func(t *testing.T) {
		s := NewSession("b")
		s.SetBootstrapTimeout(20 * time.Millisecond)

		release := make(chan struct{})
		defer close(release)

		start := time.Now()
		res := s.Bootstrap(t.Context(), func(context.Context) error {
			<-release // ignores its context, like a hung backend
			return nil
		})
		assert.Equal(t, BootstrapTimedOut, res)
		assert.Less(t, time.Since(start), time.Second)
		assert.True(t, s.Ready())
	})

	t.Run("caller cancelled", func(t *testing.T) {
		s := NewSession("b")
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		res := s.Bootstrap(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		assert.Equal(t, BootstrapFailed, res)
		assert.True(t, s.Ready())
	})
}

func TestBootstrapDefaultTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, BootstrapTimeout)
	assert.Equal(t, BootstrapTimeout, NewSession("b").timeout)
}

func TestBootstrapRunsOnce(t *testing.T) {
	s := NewSession("b")
	var calls atomic.Int32
	init := func(context.Context) error {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, BootstrapOK, s.Bootstrap(t.Context(), init))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	// A later failure cannot replace the first outcome.
	res := s.Bootstrap(t.Context(), func(context.Context) error { return errors.New("boom") })
	assert.Equal(t, BootstrapOK, res)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(t.Context())
	assert.False(t, ok)

	s := NewSession("b")
	got, ok := FromContext(WithSession(t.Context(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
