package notify

import (
	"context"
	"time"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/analytics"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// OrderCreatedPayload is the data of an order-created event.
type OrderCreatedPayload struct {
	Order     orders.OrderView `json:"order"`
	Timestamp string           `json:"timestamp"`
}

// AnalyticsUpdatedPayload is the data of an analytics-updated event.
type AnalyticsUpdatedPayload struct {
	Analytics analytics.Snapshot `json:"analytics"`
	Timestamp string             `json:"timestamp"`
}

// Broadcaster publishes ingestion events on one channel.
type Broadcaster struct {
	publisher  Publisher
	channel    string
	aggregator *analytics.Aggregator
}

// NewBroadcaster builds a Broadcaster. An empty channel means sales-data.
func NewBroadcaster(publisher Publisher, channel string, aggregator *analytics.Aggregator) *Broadcaster {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if channel == "" {
		channel = shared.DefaultChannel
	}
	return &Broadcaster{publisher: publisher, channel: channel, aggregator: aggregator}
}

// Channel reports where events go.
func (b *Broadcaster) Channel() string { return b.channel }

// OrderCreated publishes the created order.
func (b *Broadcaster) OrderCreated(ctx context.Context, order orders.OrderView, at time.Time) error {
	return b.publisher.Publish(ctx, b.channel, shared.EventOrderCreated, OrderCreatedPayload{
		Order:     order,
		Timestamp: shared.ISOTime(at),
	})
}

// AnalyticsUpdated recomputes the snapshot as of at and publishes it.
func (b *Broadcaster) AnalyticsUpdated(ctx context.Context, at time.Time) error {
	snapshot, err := b.aggregator.Snapshot(ctx, at)
	if err != nil {
		return err
	}
	return b.publisher.Publish(ctx, b.channel, shared.EventAnalyticsUpdated, AnalyticsUpdatedPayload{
		Analytics: snapshot,
		Timestamp: shared.ISOTime(at),
	})
}

var _ orders.Notifier = (*Broadcaster)(nil)
