package parallel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for pool activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	TasksSubmitted   prometheus.Counter
	TasksCompleted   prometheus.Counter
	TasksFailed      prometheus.Counter
	TaskLatency      prometheus.Histogram
	PoolWorkers      prometheus.Gauge
	Reconfigurations prometheus.Counter
}

// NewMetrics creates the pool collectors and registers them with reg.
// If reg is nil the collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_submitted_total",
			Help:      "Total number of strip tasks submitted to the pool.",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_completed_total",
			Help:      "Total number of strip tasks that completed successfully.",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "tasks_failed_total",
			Help:      "Total number of strip tasks that returned an error or panicked.",
		}),
		TaskLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "task_latency_seconds",
			Help:      "Histogram of strip task execution time.",
			Buckets:   prometheus.DefBuckets,
		}),
		PoolWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "workers",
			Help:      "Number of worker goroutines in the current pool.",
		}),
		Reconfigurations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "reconfigurations_total",
			Help:      "Total number of pool replacements.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.TasksSubmitted,
			m.TasksCompleted,
			m.TasksFailed,
			m.TaskLatency,
			m.PoolWorkers,
			m.Reconfigurations,
		)
	}
	return m
}

func (m *Metrics) taskSubmitted() {
	if m == nil {
		return
	}
	m.TasksSubmitted.Inc()
}

func (m *Metrics) observeTask(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.TaskLatency.Observe(d.Seconds())
	if err != nil {
		m.TasksFailed.Inc()
		return
	}
	m.TasksCompleted.Inc()
}

func (m *Metrics) poolReplaced(workers int, initial bool) {
	if m == nil {
		return
	}
	m.PoolWorkers.Set(float64(workers))
	if !initial {
		m.Reconfigurations.Inc()
	}
}
