// Package metrics holds the prometheus collectors of the sample service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Comparisons by endpoint: "match" or "identify".
	Comparisons *prometheus.CounterVec

	// Comparisons whose score reached the configured threshold.
	Matches *prometheus.CounterVec

	MatchLatency prometheus.Histogram

	IdentifyLatency prometheus.Histogram

	GallerySize prometheus.Gauge
}

// New registers the collectors with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sourceafis_comparisons_total",
			Help: "Template comparisons by endpoint",
		}, []string{"endpoint"}),

		Matches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sourceafis_matches_total",
			Help: "Comparisons scoring at or above the match threshold by endpoint",
		}, []string{"endpoint"}),

		MatchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sourceafis_match_duration_seconds",
			Help:    "Duration of one probe to candidate comparison",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),

		IdentifyLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sourceafis_identify_duration_seconds",
			Help:    "Duration of a full gallery search",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),

		GallerySize: f.NewGauge(prometheus.GaugeOpts{
			Name: "sourceafis_gallery_templates",
			Help: "Templates enrolled in the gallery",
		}),
	}
}

// ObserveMatch records one comparison made by endpoint.
func (m *Metrics) ObserveMatch(endpoint string, matched bool) {
	if m == nil {
		return
	}
	m.Comparisons.WithLabelValues(endpoint).Inc()
	if matched {
		m.Matches.WithLabelValues(endpoint).Inc()
	}
}

func (m *Metrics) ObserveMatchLatency(d time.Duration) {
	if m != nil {
		m.MatchLatency.Observe(d.Seconds())
	}
}

// ObserveIdentify records a gallery search over candidates entries, of which
// matched reached the threshold.
func (m *Metrics) ObserveIdentify(d time.Duration, candidates, matched int) {
	if m == nil {
		return
	}
	m.IdentifyLatency.Observe(d.Seconds())
	m.Comparisons.WithLabelValues("identify").Add(float64(candidates))
	m.Matches.WithLabelValues("identify").Add(float64(matched))
}

func (m *Metrics) SetGallerySize(n int) {
	if m != nil {
		m.GallerySize.Set(float64(n))
	}
}
