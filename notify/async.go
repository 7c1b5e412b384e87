// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/feedback-page/models"
)

const sendTimeout = 30 * time.Second

// Async delivers notifications in the background so a slow mail server
// never holds up the request that triggered them. Failures are logged.
type Async struct {
	next Notifier

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsync(next Notifier) *Async {
	return &Async{next: next}
}

// FeedbackReceived always returns nil; delivery happens on its own
// goroutine, detached from ctx's cancellation. After Close it drops the
// notification and logs a warning.
func (a *Async) FeedbackReceived(ctx context.Context, business models.Business, fb models.Feedback) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		slog.Warn("notifier closed; dropping feedback notification", "business_id", business.ID, "feedback_id", fb.ID)
		return nil
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := a.next.FeedbackReceived(sendCtx, business, fb); err != nil {
			slog.Error("failed to send feedback notification",
				"business_id", business.ID,
				"feedback_id", fb.ID,
				"error", err,
			)
		}
	}()
	return nil
}

// Close stops accepting notifications and waits for in-flight deliveries.
func (a *Async) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.wg.Wait()
	return nil
}
