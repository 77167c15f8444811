package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/httpx"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

const defaultHeartbeat = 25 * time.Second

// Stream relays a Redis channel to HTTP clients as Server-Sent Events.
type Stream struct {
	client    *redis.Client
	channel   string
	logger    *slog.Logger
	heartbeat time.Duration
}

// NewStream subscribes clients to channel on client.
func NewStream(client *redis.Client, channel string, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	if channel == "" {
		channel = shared.DefaultChannel
	}
	return &Stream{
		client:    client,
		channel:   channel,
		logger:    logger.With(slog.String("component", "notify.stream")),
		heartbeat: defaultHeartbeat,
	}
}

// MountRoutes registers GET /stream.
func (s *Stream) MountRoutes(r chi.Router) {
	r.Get("/stream", s.ServeHTTP)
}

// ServeHTTP holds the connection open until the client goes away.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpx.Failure(w, http.StatusInternalServerError, "Streaming unsupported", httpx.GenericError)
		return
	}
	ctx := r.Context()

	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() { _ = pubsub.Close() }()
	if _, err := pubsub.Receive(ctx); err != nil {
		s.logger.Error("subscribe failed", slog.String("channel", s.channel), slog.Any("error", err))
		httpx.Failure(w, http.StatusServiceUnavailable, "Stream unavailable", httpx.GenericError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()
	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventName(msg.Payload), msg.Payload)
			flusher.Flush()
		}
	}
}

func eventName(payload string) string {
	var head struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal([]byte(payload), &head); err != nil || head.Event == "" {
		return "message"
	}
	return head.Event
}
