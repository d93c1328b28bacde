// ABOUTME: Prometheus metrics for tone playback
// ABOUTME: Counters and histograms fed by tone player callbacks
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/tone"
)

// Counters
var (
	TonesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonegen_tones_total",
		Help: "Total tones submitted to the output device",
	})
	LoopsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tonegen_unit_buffer_loops_total",
		Help: "Total one-second unit buffer plays scheduled",
	})
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tonegen_tone_errors_total",
		Help: "Failed tones by kind",
	}, []string{"kind"})
)

// Histograms
var (
	ToneDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tonegen_tone_duration_ms",
		Help:    "Requested tone duration in milliseconds",
		Buckets: []float64{125, 250, 500, 1000, 2000, 5000},
	})
)

// ObserveTone records a submitted tone
func ObserveTone(e tone.Event) {
	TonesTotal.Inc()
	LoopsTotal.Add(float64(e.Iterations))
	ToneDuration.Observe(float64(e.DurationMs))
}

// ObserveError records a failed tone
func ObserveError(err error) {
	ErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind classifies a tone error for the kind label
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return "format"
	case errors.Is(err, tone.ErrInvalidRequest):
		return "request"
	default:
		return "device"
	}
}
