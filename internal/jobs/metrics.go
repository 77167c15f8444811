// Package jobmetrics instruments the asynq handlers run by the worker.
package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Metrics holds the worker collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
	published   *prometheus.CounterVec
}

// NewMetrics registers the job collectors on registerer. A nil registerer
// yields a nil *Metrics.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		return nil
	}
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_jobs_total",
			Help: "Job executions by job name and outcome.",
		}, []string{"job", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sales_job_duration_seconds",
			Help:    "Wall time of job executions.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"job"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sales_job_last_success_timestamp_seconds",
			Help: "Unix time of the most recent successful run.",
		}, []string{"job"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_job_snapshots_published_total",
			Help: "Analytics snapshots published by jobs per channel.",
		}, []string{"job", "channel"}),
	}
	registerer.MustRegister(m.runs, m.duration, m.lastSuccess, m.published)
	return m
}

// Run times one execution of a job.
type Run struct {
	metrics *Metrics
	job     string
	started time.Time
}

// Track starts timing a run of job.
func (m *Metrics) Track(job string) *Run {
	return &Run{metrics: m, job: job, started: time.Now()}
}

// End records the outcome of the run and returns err unchanged.
func (r *Run) End(err error) error {
	if r == nil || r.metrics == nil {
		return err
	}
	finished := time.Now()
	r.metrics.duration.WithLabelValues(r.job).Observe(finished.Sub(r.started).Seconds())
	if err != nil {
		r.metrics.runs.WithLabelValues(r.job, statusFailure).Inc()
		return err
	}
	r.metrics.runs.WithLabelValues(r.job, statusSuccess).Inc()
	r.metrics.lastSuccess.WithLabelValues(r.job).Set(float64(finished.Unix()))
	return nil
}

// AddPublished counts snapshots a job pushed to channel.
func (m *Metrics) AddPublished(job, channel string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.published.WithLabelValues(job, channel).Add(float64(count))
}
