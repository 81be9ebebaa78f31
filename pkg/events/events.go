// Package events publishes content-change events for admin mutations so
// downstream consumers (cache invalidation, site rebuilds, analytics) can
// react without polling the database. Publishing is best effort: a failed
// publish is logged and never fails the mutation that triggered it.
package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypePackageCreated = "package.created"
	TypePackageUpdated = "package.updated"
	TypePackageDeleted = "package.deleted"

	TypeFareCreated     = "special_fare.created"
	TypeFareUpdated     = "special_fare.updated"
	TypeFareDeactivated = "special_fare.deactivated"

	TypeUserRegistered = "user.registered"
)

// Event is the payload written to the content-events topic.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher is implemented by the Kafka publisher and by the no-op used when
// no brokers are configured.
type Publisher interface {
	Publish(ctx context.Context, eventType, entityID string, data any)
	Close() error
}

// NopPublisher drops every event. Used when KAFKA_BROKERS is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType, entityID string, data any) {}

func (NopPublisher) Close() error { return nil }
