// Package eventbus defines the publish contract for domain events and an
// in-memory implementation used in development and tests.
package eventbus

import (
	"context"

	"github.com/cashfold/checking/pkg/domain/events"
)

// Publisher is the contract the workflow publishes domain events through.
// Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}
