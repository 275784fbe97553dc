// Package o11y provides observability utilities.
package o11y

import "context"

// Reporter is an interface for pushing human-readable messages to an
// observability backend.
type Reporter interface {
	SendMessage(ctx context.Context, msg string)
}
