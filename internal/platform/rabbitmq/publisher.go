package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/bpcalc/internal/config"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/redact"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublisherClosed is returned when publishing after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// Channel is the subset of *amqp.Channel used by the Publisher.
type Channel interface {
	QueueDeclare(
		name string,
		durable, autoDelete, exclusive, noWait bool,
		args amqp.Table,
	) (amqp.Queue, error)
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

// Publisher publishes classification events to a single durable queue.
// An AMQP channel is not safe for concurrent publishing, so calls are serialized.
type Publisher struct {
	conn    io.Closer
	ch      Channel
	queue   string
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

var _ events.EventHandler = (*Publisher)(nil)

// Dial connects to the broker described by cfg and returns a ready Publisher.
func Dial(cfg config.TelemetryConfig, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewPublisher(ch, cfg.Queue, time.Duration(cfg.PublishTimeoutSeconds)*time.Second, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher declares queue on ch and returns a Publisher that writes to it.
func NewPublisher(ch Channel, queue string, timeout time.Duration, logger *slog.Logger) (*Publisher, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare queue %q: %w", queue, err)
	}

	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
		logger:  logger.With("component", "rabbitmq_publisher", "queue", queue),
	}, nil
}

// HandleEvent publishes event as a persistent JSON message.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.ClassificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode classification event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.CreatedAt,
		Body:         body,
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	// default exchange, routing key is the queue name
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish classification event",
			"error", redact.Error(err),
			"event_id", event.ID)
		return fmt.Errorf("failed to publish classification event: %w", err)
	}

	p.logger.DebugContext(ctx, "published classification event", "event_id", event.ID)
	return nil
}

// Close releases the channel and, when owned, the connection. It is safe to
// call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
