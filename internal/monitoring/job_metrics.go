package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics tracks background indexer runs.
type JobMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

func NewJobMetrics(registry *prometheus.Registry) *JobMetrics {
	m := &JobMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poolfee_backend_job_runs_total",
				Help: "Total number of background job runs",
			},
			[]string{"job", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poolfee_backend_job_run_duration_seconds",
				Help:    "Duration of background job runs in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"job"},
		),
	}

	registry.MustRegister(m.runsTotal, m.runDuration)

	return m
}

func (m *JobMetrics) RecordRun(job string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.runsTotal.WithLabelValues(job, status).Inc()
	m.runDuration.WithLabelValues(job).Observe(duration.Seconds())
}
