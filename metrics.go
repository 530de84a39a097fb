package mandelbrot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// renderMetrics counts whole renders. A nil *renderMetrics records nothing.
type renderMetrics struct {
	renders  *prometheus.CounterVec
	duration prometheus.Histogram
}

func newRenderMetrics(reg prometheus.Registerer) *renderMetrics {
	if reg == nil {
		return nil
	}
	m := &renderMetrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "renders_total",
			Help:      "Total number of renders by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Wall time from submission of the first strip to the barrier.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	reg.MustRegister(m.renders, m.duration)
	return m
}

func (m *renderMetrics) observe(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	if err != nil {
		m.renders.WithLabelValues("failure").Inc()
		return
	}
	m.renders.WithLabelValues("success").Inc()
}
