package interfaces

import "context"

// Notifier sends a user-facing text message over the outbound channel.
// Sends downstream of a committed transition are best-effort: callers log
// failures and never let them alter an already-determined outcome.
type Notifier interface {
	Send(ctx context.Context, userID, text string) error
}
