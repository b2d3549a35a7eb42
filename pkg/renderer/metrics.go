package renderer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes render progress to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	samples        prometheus.Counter
	droppedSamples prometheus.Counter
	tiles          prometheus.Counter
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewMetrics creates the render metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		samples: factory.NewCounter(prometheus.CounterOpts{
			Name: "lighttransport_samples_total",
			Help: "Radiance estimates accumulated into the film",
		}),
		droppedSamples: factory.NewCounter(prometheus.CounterOpts{
			Name: "lighttransport_dropped_samples_total",
			Help: "Non-finite or negative radiance estimates that were discarded",
		}),
		tiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "lighttransport_tiles_total",
			Help: "Tiles rendered to completion",
		}),
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lighttransport_renders_total",
			Help: "Renders by outcome",
		}, []string{"integrator", "status"}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lighttransport_render_duration_seconds",
			Help:    "Wall time of completed renders",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

func (m *Metrics) addTile(samples, dropped int) {
	if m == nil {
		return
	}
	m.tiles.Inc()
	m.samples.Add(float64(samples))
	m.droppedSamples.Add(float64(dropped))
}

func (m *Metrics) observeRender(integrator string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.renders.WithLabelValues(integrator, status).Inc()
	if err == nil {
		m.renderDuration.Observe(duration.Seconds())
	}
}
