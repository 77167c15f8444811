package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsBroadcast republishes the analytics snapshot.
	TaskAnalyticsBroadcast = "analytics:broadcast"
)

// AnalyticsBroadcastPayload tags a broadcast with the reason it was queued.
type AnalyticsBroadcastPayload struct {
	Trigger string `json:"trigger"`
}

// NewAnalyticsBroadcastTask constructs an analytics broadcast task. An empty
// trigger means "cron".
func NewAnalyticsBroadcastTask(trigger string) (*asynq.Task, error) {
	if trigger == "" {
		trigger = "cron"
	}
	data, err := json.Marshal(AnalyticsBroadcastPayload{Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsBroadcast, data), nil
}
