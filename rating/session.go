// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"context"
	"errors"
	"sync"
	"time"
)

// BootstrapTimeout bounds the demo-data initialisation. Past it the session
// becomes ready whatever the backend is doing.
const BootstrapTimeout = 2 * time.Second

type BootstrapResult int

const (
	BootstrapOK BootstrapResult = iota + 1
	BootstrapFailed
	BootstrapTimedOut
)

func (r BootstrapResult) String() string {
	switch r {
	case BootstrapOK:
		return "ok"
	case BootstrapFailed:
		return "failed"
	case BootstrapTimedOut:
		return "timed out"
	default:
		return "pending"
	}
}

// Session is one customer's pass through the rating page. It is safe for
// concurrent use.
type Session struct {
	BusinessID string

	mu     sync.Mutex
	rating int
	ready  bool

	once    sync.Once
	result  BootstrapResult
	timeout time.Duration
}

// NewSession starts a session that is not ready until Bootstrap has run.
func NewSession(businessID string) *Session {
	return &Session{BusinessID: businessID, timeout: BootstrapTimeout}
}

// SetBootstrapTimeout overrides BootstrapTimeout. Call before Bootstrap.
func (s *Session) SetBootstrapTimeout(d time.Duration) {
	s.timeout = d
}

// Select records a star rating without submitting it; 0 clears it.
func (s *Session) Select(r int) error {
	if r != 0 {
		if _, err := Route(r); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.rating = r
	s.mu.Unlock()
	return nil
}

func (s *Session) Rating() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rating
}

func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// CanSubmit is false while no rating is selected or bootstrap is pending.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready && s.rating != 0
}

// Bootstrap runs init at most once per session, giving it the bootstrap
// timeout. Whatever happens the session is ready afterwards. Later calls
// return the first result without running init again.
func (s *Session) Bootstrap(ctx context.Context, init func(context.Context) error) BootstrapResult {
	s.once.Do(func() {
		s.result = s.runBootstrap(ctx, init)
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
	})
	return s.result
}

func (s *Session) runBootstrap(ctx context.Context, init func(context.Context) error) BootstrapResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// init may ignore ctx; the buffered channel lets it finish late
	// without leaking the goroutine.
	done := make(chan error, 1)
	go func() { done <- init(ctx) }()

	select {
	case err := <-done:
		if err == nil {
			return BootstrapOK
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return BootstrapTimedOut
		}
		return BootstrapFailed
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return BootstrapTimedOut
		}
		return BootstrapFailed
	}
}

// BootstrapResult reports the outcome of Bootstrap, or 0 before it ran.
func (s *Session) BootstrapResult() BootstrapResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return 0
	}
	return s.result
}

// Submit confirms the selected rating and returns where to go next.
func (s *Session) Submit() (Destination, error) {
	s.mu.Lock()
	r, ready := s.rating, s.ready
	s.mu.Unlock()

	if r == 0 {
		return 0, ErrNoRating
	}
	if !ready {
		return 0, ErrNotReady
	}
	return Route(r)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
