package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) { return s.info, s.err }

type stubEnqueuer struct {
	triggers []string
	err      error
}

func (s *stubEnqueuer) EnqueueAnalyticsBroadcast(_ context.Context, trigger string) (*asynq.TaskInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.triggers = append(s.triggers, trigger)
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func serveJobs(h *Handler, method, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.MountRoutes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestJobsHealth(t *testing.T) {
	rr := serveJobs(NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 3, Active: 1}}, nil, nil), http.MethodGet, "/jobs/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":3,"active":1,"failed":0}`, rr.Body.String())

	rr = serveJobs(NewHandler(nil, nil, nil), http.MethodGet, "/jobs/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serveJobs(NewHandler(stubInspector{err: errors.New("redis down")}, nil, nil), http.MethodGet, "/jobs/health")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestEnqueueBroadcastEndpoint(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	rr := serveJobs(NewHandler(nil, enqueuer, nil), http.MethodPost, "/jobs/analytics-broadcast")

	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, []string{"manual"}, enqueuer.triggers)
	assert.Contains(t, rr.Body.String(), `"task_id":"task-1"`)

	rr = serveJobs(NewHandler(nil, &stubEnqueuer{err: errors.New("redis down")}, nil), http.MethodPost, "/jobs/analytics-broadcast")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotContains(t, rr.Body.String(), "redis down")
}

func TestNewWorkerRejectsBadCron(t *testing.T) {
	task, err := NewAnalyticsBroadcastTask("")
	require.NoError(t, err)
	_, err = NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"},
		Cron:      []CronRegistration{{Spec: "not a cron", Task: task}},
	})
	assert.Error(t, err)
}
