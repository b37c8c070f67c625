package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/config"
)

// Type names a domain event; it doubles as the AMQP routing key
type Type string

const (
	OrderPlaced        Type = "order.placed"
	OrderStatusChanged Type = "order.status_changed"
)

// Event is the envelope published for every order lifecycle change
type Event struct {
	ID        uuid.UUID              `json:"id"`
	Type      Type                   `json:"type"`
	OrderID   uuid.UUID              `json:"orderId"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// New stamps an event with a fresh id and the current time
func New(t Type, orderID uuid.UUID, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher delivers events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the structured log only
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.Info("Order event",
		zap.String("event_id", event.ID.String()),
		zap.String("type", string(event.Type)),
		zap.String("order_id", event.OrderID.String()),
		zap.Any("data", event.Data),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// NewPublisher builds the publisher selected by EVENTS_DRIVER
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	case "", "log":
		return NewLogPublisher(logger), nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
