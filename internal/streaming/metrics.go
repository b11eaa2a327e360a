package streaming

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors of a Manager.
type Metrics struct {
	Chunks          *prometheus.GaugeVec
	QueueDepth      prometheus.Gauge
	InFlight        prometheus.Gauge
	Jobs            *prometheus.CounterVec
	JobDuration     *prometheus.HistogramVec
	GenerateFailure prometheus.Counter
	StaleResults    prometheus.Counter
	Unloads         prometheus.Counter
}

// NewMetrics creates the collectors and registers them with r when r is non-nil.
func NewMetrics(r prometheus.Registerer) *Metrics {
	m := &Metrics{
		Chunks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "voxelforge",
			Name:      "chunks",
			Help:      "Loaded chunks by lifecycle state.",
		}, []string{"state"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelforge",
			Name:      "queue_depth",
			Help:      "Positions waiting for a worker.",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelforge",
			Name:      "inflight_jobs",
			Help:      "Jobs handed to workers whose result has not been integrated.",
		}),
		Jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxelforge",
			Name:      "jobs_completed_total",
			Help:      "Completed worker jobs by kind.",
		}, []string{"kind"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voxelforge",
			Name:      "job_duration_seconds",
			Help:      "Worker time per job by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"kind"}),
		GenerateFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelforge",
			Name:      "generate_failures_total",
			Help:      "Chunk generation attempts that returned an error or panicked.",
		}),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelforge",
			Name:      "stale_results_total",
			Help:      "Worker results dropped because the position was unloaded or rescheduled.",
		}),
		Unloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelforge",
			Name:      "chunk_unloads_total",
			Help:      "Chunks dropped for leaving the streaming window.",
		}),
	}
	if r != nil {
		r.MustRegister(m.Chunks, m.QueueDepth, m.InFlight, m.Jobs, m.JobDuration,
			m.GenerateFailure, m.StaleResults, m.Unloads)
	}
	return m
}
