// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"errors"
	"fmt"
)

var (
	ErrNoRating      = errors.New("no rating selected")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNotReady      = errors.New("session is still loading")
)

// Destination is where a rating sends the customer next.
type Destination int

const (
	// DestinationFeedback is the private feedback form (ratings 1-3).
	DestinationFeedback Destination = iota + 1
	// DestinationThankYou lists public review platforms (ratings 4-5).
	DestinationThankYou
)

func (d Destination) String() string {
	switch d {
	case DestinationFeedback:
		return "feedback"
	case DestinationThankYou:
		return "thank-you"
	default:
		return fmt.Sprintf("Destination(%d)", int(d))
	}
}

// Route decides the next page for a star rating.
func Route(r int) (Destination, error) {
	switch {
	case r == 0:
		return 0, ErrNoRating
	case r >= 1 && r <= 3:
		return DestinationFeedback, nil
	case r >= 4 && r <= 5:
		return DestinationThankYou, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRating, r)
	}
}
