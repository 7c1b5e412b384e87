// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify emails business owners about new feedback and sends
// customer auto-replies, following each business's notification settings.
// Delivery failures are returned to the caller, which logs them; they never
// fail the submission that triggered them.
package notify
