package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/jobs"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// SnapshotPublisher recomputes and publishes the analytics snapshot.
type SnapshotPublisher interface {
	AnalyticsUpdated(ctx context.Context, at time.Time) error
	Channel() string
}

// AnalyticsBroadcastJob keeps the last-minute window fresh for live
// subscribers when no orders arrive.
type AnalyticsBroadcastJob struct {
	Publisher SnapshotPublisher
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     shared.Clock
}

// NewAnalyticsBroadcastJob wires dependencies for the broadcast handler.
func NewAnalyticsBroadcastJob(publisher SnapshotPublisher, logger *slog.Logger, metrics *jobmetrics.Metrics) *AnalyticsBroadcastJob {
	return &AnalyticsBroadcastJob{
		Publisher: publisher,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes analytics broadcast tasks.
func (j *AnalyticsBroadcastJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Publisher == nil {
		return errors.New("analytics broadcast: handler not configured")
	}
	var payload AnalyticsBroadcastPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskAnalyticsBroadcast)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("trigger", payload.Trigger), slog.String("channel", j.Publisher.Channel()))
	now := j.clock.Now()
	if err := j.Publisher.AnalyticsUpdated(ctx, now); err != nil {
		resultErr = shared.Notification(shared.EventAnalyticsUpdated, err)
		logger.Error("broadcast analytics", slog.Any("error", resultErr))
		return resultErr
	}
	j.Metrics.AddPublished(TaskAnalyticsBroadcast, j.Publisher.Channel(), 1)
	logger.Debug("analytics broadcast published", slog.Duration("duration", time.Since(now)))
	return resultErr
}

func (j *AnalyticsBroadcastJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
