// Package events provides a fire-and-forget NATS publisher for usage events.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subject constants for every event type the service produces.
const (
	SubjectUploadConfirmed = "animestream.upload.confirmed"
	SubjectWatchResolved   = "animestream.watch.resolved"
	SubjectSearchPerformed = "animestream.search.performed"
)

// InvalidationSubject carries cache-invalidation keys after catalog writes.
const InvalidationSubject = "animestream.catalog.invalidated"

// Event is the canonical envelope sent to all animestream.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Publisher publishes usage events to NATS. A nil Publisher or a Publisher
// without a connection is a safe no-op, so services can run without NATS.
type Publisher struct {
	nc  *nats.Conn
	log *zap.Logger
}

func New(nc *nats.Conn, log *zap.Logger) *Publisher {
	return &Publisher{nc: nc, log: log}
}

// Publish sends an event asynchronously. Failures are logged as warnings
// and never surface to the caller.
func (p *Publisher) Publish(subject, eventName string, props map[string]any) {
	if p == nil || p.nc == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		if p.log != nil {
			p.log.Warn("event marshal failed", zap.String("subject", subject), zap.Error(err))
		}
		return
	}
	if err := p.nc.Publish(subject, data); err != nil && p.log != nil {
		p.log.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Invalidate publishes a cache-invalidation key after a catalog write.
func (p *Publisher) Invalidate(key string) {
	if p == nil || p.nc == nil {
		return
	}
	if err := p.nc.Publish(InvalidationSubject, []byte(key)); err != nil && p.log != nil {
		p.log.Warn("invalidation publish failed", zap.String("key", key), zap.Error(err))
	}
}
