package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// publisher is the subset of *amqp091.Channel used to publish.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPPublisher publishes events as persistent JSON messages to a topic
// exchange.
type AMQPPublisher struct {
	conn       *amqp091.Connection
	channel    publisher
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// DialAMQP connects to url and declares the exchange.
func DialAMQP(url, exchange, routingKey string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newAMQPPublisher(channel, exchange, routingKey, logger)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch publisher, exchange, routingKey string, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger.With("component", "amqp"),
	}
}

// Notify publishes event under routingKey.eventType.
func (p *AMQPPublisher) Notify(ctx context.Context, event Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := p.routingKey + "." + string(event.Type)
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.DebugContext(ctx, "Published event", "type", event.Type, "exchange", p.exchange, "routing_key", key)
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	if c, ok := p.channel.(*amqp091.Channel); ok && c != nil {
		c.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
