package services

import (
	"context"
	"time"
)

// defaultNotifyTimeout caps each best-effort side effect (welcome email, activity publish).
const defaultNotifyTimeout = 2 * time.Second

// notifyContext gives a side effect its own deadline. It keeps the caller's values
// but not its cancellation or the persistence deadline.
func notifyContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), d)
}
