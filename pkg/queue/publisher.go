// Package queue publishes bus configuration lifecycle events to RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"fleet-admin/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type EventType string

const (
	ConfigurationCreated EventType = "bus_configuration.created"
	ConfigurationUpdated EventType = "bus_configuration.updated"
	ConfigurationDeleted EventType = "bus_configuration.deleted"
	ConfigurationCloned  EventType = "bus_configuration.cloned"
)

type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"entity_id"`
	SourceID   string    `json:"source_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	TotalSeats int       `json:"total_seats,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, entityID string) Event {
	return Event{Type: t, EntityID: entityID, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type rabbitPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

// NewRabbit dials the broker and declares the durable event queue.
func NewRabbit(cfg utils.RabbitMQConfig, log *zap.Logger) (Publisher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rabbitmq url cannot be empty")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", cfg.Queue, err)
	}

	return &rabbitPublisher{
		conn:  conn,
		ch:    ch,
		queue: cfg.Queue,
		log:   log.With(zap.String("publisher", "rabbitmq")),
	}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
		)
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.log.Debug("Event published",
		zap.String("type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
	)
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Noop drops every event. Used when RABBITMQ_URL is not set.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error { return nil }
