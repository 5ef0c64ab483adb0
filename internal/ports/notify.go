package ports

import "context"

// Dispatcher delivers one-time codes to the account email address.
// Callers treat it as fire-and-forget: a dispatch failure is logged and never
// rolls back the challenge that was already persisted.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}
