// Package notify publishes sales events to live subscribers and relays them
// to HTTP clients.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Publisher delivers one named event on a channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// Envelope is the wire format of every published event.
type Envelope struct {
	EventID     string          `json:"event_id"`
	Event       string          `json:"event"`
	Data        json.RawMessage `json:"data"`
	PublishedAt string          `json:"published_at"`
}

func encode(event string, payload any, at time.Time) (Envelope, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("notify: encode %s payload: %w", event, err)
	}
	env := Envelope{
		EventID:     uuid.NewString(),
		Event:       event,
		Data:        data,
		PublishedAt: shared.ISOTime(at),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("notify: encode %s envelope: %w", event, err)
	}
	return env, body, nil
}

// NopPublisher drops every event. Used when NOTIFY_DRIVER=none.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
