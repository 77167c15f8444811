package notify

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

func TestAMQPPublisherAgainstBroker(t *testing.T) {
	url := os.Getenv("SALES_TEST_AMQP_URL")
	if url == "" {
		t.Skip("SALES_TEST_AMQP_URL not set")
	}
	publisher, err := NewAMQPPublisher(url, nil)
	require.NoError(t, err)
	defer publisher.Close()

	require.NoError(t, publisher.Publish(context.Background(), "sales-data", "order-created", map[string]int{"id": 1}))
}

type stubConfirm struct {
	acked bool
	hang  bool
}

func (c stubConfirm) WaitContext(ctx context.Context) (bool, error) {
	if c.hang {
		<-ctx.Done()
		return false, ctx.Err()
	}
	return c.acked, nil
}

type scriptedChannel struct {
	confirms []stubConfirm
	keys     []string
	ids      []string
}

func (s *scriptedChannel) publish(_ context.Context, key string, msg amqp.Publishing) (confirmWaiter, error) {
	s.keys = append(s.keys, key)
	s.ids = append(s.ids, msg.MessageId)
	next := s.confirms[0]
	s.confirms = s.confirms[1:]
	return next, nil
}

func newScriptedPublisher(ch *scriptedChannel) *AMQPPublisher {
	return &AMQPPublisher{
		publish:     ch.publish,
		confirmWait: 20 * time.Millisecond,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         shared.SystemClock,
	}
}

func TestAMQPPublisherRetriesAfterConfirmTimeout(t *testing.T) {
	ch := &scriptedChannel{confirms: []stubConfirm{{hang: true}, {acked: true}}}
	publisher := newScriptedPublisher(ch)

	require.NoError(t, publisher.Publish(context.Background(), "sales-data", "order-created", map[string]int{"id": 1}))
	assert.Equal(t, []string{"sales-data.order-created", "sales-data.order-created"}, ch.keys)
	assert.Equal(t, ch.ids[0], ch.ids[1])
	assert.Empty(t, ch.confirms)
}

func TestAMQPPublisherUsesOwnConfirmPerDelivery(t *testing.T) {
	ch := &scriptedChannel{confirms: []stubConfirm{
		{hang: true}, {acked: true},
		{acked: false}, {acked: false}, {acked: false},
	}}
	publisher := newScriptedPublisher(ch)

	require.NoError(t, publisher.Publish(context.Background(), "sales-data", "order-created", map[string]int{"id": 1}))
	err := publisher.Publish(context.Background(), "sales-data", "analytics-updated", map[string]int{"id": 2})
	require.ErrorIs(t, err, errNotAcked)
	assert.Len(t, ch.keys, 5)
	assert.Empty(t, ch.confirms)
}

func TestAMQPPublisherStopsOnCancelledContext(t *testing.T) {
	ch := &scriptedChannel{confirms: []stubConfirm{{hang: true}, {acked: true}}}
	publisher := newScriptedPublisher(ch)
	publisher.confirmWait = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := publisher.Publish(ctx, "sales-data", "order-created", map[string]int{"id": 1})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, ch.keys, 1)
}
