// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package rating is the customer-facing side of Feedback Page: a star
// rating routes the customer to the private feedback form (1-3 stars) or to
// the public review links (4-5 stars).
//
// A Session carries the selected rating and whether the one-shot demo
// bootstrap has finished. Bootstrap gives the backend BootstrapTimeout to
// answer and then enables submission regardless. Flow wraps a Session with
// the API calls each page makes and turns their failures into inline
// messages.
package rating
