package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"roamly/pkg/logger"
)

// KafkaPublisher writes change events to a single topic, keyed by entity ID
// so all events for one record land on the same partition, in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger

	mu     sync.Mutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 100 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "detail", msg)
		}),
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, entityID string, data any) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	value, err := event.Encode()
	if err != nil {
		p.log.Error("Failed to encode content event",
			"event_type", eventType,
			"entity_id", entityID,
			"error", err,
		)
		return
	}

	msg := kafka.Message{
		Key:   []byte(entityID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.ID)},
			{Key: "event-type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish content event",
			"event_type", eventType,
			"entity_id", entityID,
			"error", err,
		)
		return
	}

	p.log.Debug("Content event published",
		"event_type", eventType,
		"entity_id", entityID,
		"event_id", event.ID,
	)
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
