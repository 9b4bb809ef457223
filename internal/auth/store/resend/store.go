// Package resend tracks verification email resend attempts per address so
// the cap is enforced server-side rather than trusted to the client.
package resend

import (
	"context"
	"time"
)

// AttemptStore counts resend attempts within a rolling window.
type AttemptStore interface {
	// Increment records an attempt for the address and returns the total
	// attempts within the window, including this one.
	Increment(ctx context.Context, email string, window time.Duration) (int, error)
	// Reset clears recorded attempts for the address.
	Reset(ctx context.Context, email string) error
}
