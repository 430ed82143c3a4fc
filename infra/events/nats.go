// Package events implements the event sink on NATS. Publication is
// best-effort by contract: callers log failures and never fail a committed
// ledger movement on them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	domainevents "github.com/cashfold/checking/pkg/domain/events"
	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes domain events as JSON to
// "<prefix>.<event type>" subjects.
type NatsPublisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url, subjectPrefix string, logger *slog.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NatsPublisher{nc: nc, prefix: subjectPrefix, logger: logger}, nil
}

// Publish implements eventbus.Publisher.
func (p *NatsPublisher) Publish(_ context.Context, event domainevents.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type(), err)
	}
	subject := p.prefix + "." + event.Type()
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	p.logger.Debug("event published", "subject", subject)
	return nil
}

// Close drains the connection.
func (p *NatsPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("failed to drain nats connection", "error", err)
	}
}
