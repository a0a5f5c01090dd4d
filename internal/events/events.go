// Package events publishes domain events about users and todo managers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// Event types.
const (
	TypeUserCreated     = "user.created"
	TypeUserRoleChanged = "user.role_changed"
	TypeManagerAssigned = "manager.assigned"
	TypeManagerRemoved  = "manager.removed"
)

// Event is the envelope written to the broker.
type Event struct {
	Type       string    `json:"event_type"`
	Key        string    `json:"-"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// New builds an event keyed by key (the partitioning key, e.g. a todo id).
func New(eventType, key string, data any) Event {
	return Event{Type: eventType, Key: key, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// KafkaPublisher writes events to Kafka topics named <prefix><event type>.
type KafkaPublisher struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

// NewKafkaPublisher connects a synchronous producer to the given brokers.
func NewKafkaPublisher(brokers []string, topicPrefix string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(p, topicPrefix), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(p sarama.SyncProducer, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topicPrefix: topicPrefix}
}

// Topic returns the topic an event type is written to.
func (k *KafkaPublisher) Topic(eventType string) string {
	return k.topicPrefix + eventType
}

// Publish marshals ev and sends it synchronously.
func (k *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	msg := &sarama.ProducerMessage{
		Topic: k.Topic(ev.Type),
		Value: sarama.ByteEncoder(payload),
	}
	if ev.Key != "" {
		msg.Key = sarama.StringEncoder(ev.Key)
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send %s event: %w", ev.Type, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
