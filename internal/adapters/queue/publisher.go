package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"cinematicketing/internal/domain"
)

const (
	exchangeName        = "cinema.events"
	bookingConfirmedKey = "booking.confirmed"
)

// amqpPublisher publishes booking events to a topic exchange.
type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewAMQPPublisher dials the broker, declares the events exchange, and
// returns a BookingPublisher. Close releases the connection.
func NewAMQPPublisher(url string, logger *slog.Logger) (*amqpPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &amqpPublisher{conn: conn, channel: channel, logger: logger}, nil
}

var _ domain.BookingPublisher = (*amqpPublisher)(nil)

func (p *amqpPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	err = p.channel.PublishWithContext(ctx, exchangeName, bookingConfirmedKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	p.logger.Debug("published booking event", "reference", event.Reference, "routing_key", bookingConfirmedKey)
	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// noopPublisher drops events; used when no broker is configured.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that silently discards events.
func NewNoopPublisher() domain.BookingPublisher {
	return &noopPublisher{}
}

func (noopPublisher) PublishBookingConfirmed(context.Context, domain.BookingEvent) error {
	return nil
}
