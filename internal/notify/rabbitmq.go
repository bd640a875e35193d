package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes alert events to a durable queue. Publishes run
// through a circuit breaker so a dead broker fails fast.
type RabbitMQPublisher struct {
	conn       *amqp.Connection
	ch         channel
	queue      string
	cb         *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
}

// NewRabbitMQPublisher dials the broker and declares the alert queue.
func NewRabbitMQPublisher(url, queue string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	// Declare queue (idempotent)
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %q: %w", queue, err)
	}

	slog.Info("connected to RabbitMQ", "queue", queue)

	p := newPublisher(ch, queue)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string) *RabbitMQPublisher {
	settings := gobreaker.Settings{
		Name:        "alert-publisher",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &RabbitMQPublisher{
		ch:         ch,
		queue:      queue,
		cb:         gobreaker.NewCircuitBreaker(settings),
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event AlertEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.publishWithRetry(ctx, body)
	})
	return err
}

func (p *RabbitMQPublisher) publishWithRetry(ctx context.Context, body []byte) error {
	var lastErr error
	for i := 0; i < p.maxRetries; i++ {
		err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
		if err == nil {
			return nil
		}

		lastErr = err
		slog.WarnContext(ctx, "failed to publish alert event",
			"attempt", i+1,
			"max_attempts", p.maxRetries,
			"error", err)

		if i < p.maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.retryDelay):
			}
		}
	}
	return fmt.Errorf("failed to publish alert event after %d attempts: %w", p.maxRetries, lastErr)
}

// Close closes the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
