package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/qdrive/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher sends JSON events to a durable topic exchange.
type RabbitPublisher struct {
	ch       Channel
	conn     io.Closer
	exchange string
	log      logging.Logger
}

// NewRabbitPublisher declares exchange on ch and returns a publisher bound to it.
func NewRabbitPublisher(ch Channel, exchange string, log logging.Logger) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange, log: log}, nil
}

// Dial connects to the broker at url and opens a publishing channel.
func Dial(url, exchange string, log logging.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	p, err := NewRabbitPublisher(ch, exchange, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func (p *RabbitPublisher) PublishRideRequested(ctx context.Context, ev RideRequested) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal ride event: %w", err)
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingRideRequested, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.RideID,
		Timestamp:    ev.RequestTime,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("failed to publish ride event: %w", err)
	}

	p.log.Debug(ctx, "ride event published", "ride_id", ev.RideID, "routing_key", RoutingRideRequested)
	return nil
}

func (p *RabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
