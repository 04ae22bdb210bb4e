package mandel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine instrumentation, registered with the default prometheus registry.
// Callers that don't scrape metrics pay only a counter increment per pass.
var (
	passesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandel_passes_completed_total",
		Help: "Refinement passes merged into an image buffer",
	})

	passesStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandel_passes_stale_total",
		Help: "Passes discarded because their generation was superseded",
	})

	samplesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandel_samples_computed_total",
		Help: "Escape-time samples iterated (excludes samples reused from a coarser pass)",
	})

	rendersSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandel_renders_superseded_total",
		Help: "Pending render requests displaced before starting",
	})

	deepRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mandel_deep_renders_total",
		Help: "Render requests resolved to arbitrary-precision arithmetic",
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mandel_render_duration_seconds",
		Help:    "Wall time from first pass to completed request",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)
