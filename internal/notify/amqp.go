package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

const (
	// ExchangeName is the topic exchange events are published to.
	ExchangeName = "sales.events"
	exchangeType = "topic"

	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 2 * time.Second
	confirmTimeout = 5 * time.Second
)

var (
	errNotAcked       = errors.New("notify: event not acknowledged")
	errConfirmTimeout = errors.New("notify: confirmation timeout")
)

// confirmWaiter is satisfied by *amqp.DeferredConfirmation. Each delivery
// gets its own, so a late confirm can never be read by another publish.
type confirmWaiter interface {
	WaitContext(ctx context.Context) (bool, error)
}

// AMQPPublisher publishes envelopes to a RabbitMQ topic exchange with
// publisher confirms. The routing key is "<channel>.<event>".
type AMQPPublisher struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	publish     func(ctx context.Context, key string, msg amqp.Publishing) (confirmWaiter, error)
	confirmWait time.Duration
	logger      *slog.Logger
	now         shared.Clock

	mu sync.Mutex
}

// NewAMQPPublisher dials url and declares the durable exchange.
func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, exchangeType, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: enable confirms: %w", err)
	}

	logger.Info("connected to rabbitmq", slog.String("exchange", ExchangeName))
	p := &AMQPPublisher{
		conn:        conn,
		channel:     ch,
		confirmWait: confirmTimeout,
		logger:      logger.With(slog.String("component", "notify.amqp")),
		now:         shared.SystemClock,
	}
	p.publish = p.publishDeferred
	return p, nil
}

func (p *AMQPPublisher) publishDeferred(ctx context.Context, key string, msg amqp.Publishing) (confirmWaiter, error) {
	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, ExchangeName, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	return confirm, nil
}

// RoutingKey joins a channel and an event name.
func RoutingKey(channel, event string) string {
	return channel + "." + event
}

// Publish implements Publisher, retrying with exponential backoff.
func (p *AMQPPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	env, body, err := encode(event, payload, p.now.Now())
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now.Now(),
		MessageId:    env.EventID,
		Type:         event,
		Body:         body,
	}
	key := RoutingKey(channel, event)

	p.mu.Lock()
	defer p.mu.Unlock()

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff = min(backoff*2, maxBackoff)
			}
		}
		if lastErr = p.publishOnce(ctx, key, msg); lastErr == nil {
			return nil
		}
		p.logger.Warn("publish attempt failed",
			slog.Int("attempt", attempt+1),
			slog.String("routing_key", key),
			slog.Any("error", lastErr))
	}
	return fmt.Errorf("notify: publish %s after %d attempts: %w", key, maxRetries, lastErr)
}

func (p *AMQPPublisher) publishOnce(ctx context.Context, key string, msg amqp.Publishing) error {
	confirm, err := p.publish(ctx, key, msg)
	if err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(ctx, p.confirmWait)
	defer cancel()
	acked, err := confirm.WaitContext(waitCtx)
	switch {
	case err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded):
		return errConfirmTimeout
	case err != nil:
		return err
	case !acked:
		return errNotAcked
	}
	return nil
}

// Close shuts the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("close channel", slog.Any("error", err))
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
