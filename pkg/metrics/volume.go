package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/volmeta/volmeta/pkg/volume"
)

// volumeMetrics is the Prometheus implementation of the volume.Metrics
// interface.
//
// This implementation collects:
//   - Probe counts by resulting status and probe latency
//   - Single-volume query counts by record status and query latency
//   - Enumeration counts, sizes, and latency
type volumeMetrics struct {
	probes              *prometheus.CounterVec
	probeDuration       prometheus.Histogram
	volumeQueries       *prometheus.CounterVec
	queryDuration       prometheus.Histogram
	enumerations        prometheus.Counter
	enumerationMounts   prometheus.Histogram
	enumerationDuration prometheus.Histogram
}

// NewVolumeMetrics creates a new Prometheus-backed volume.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called); passing
// nil to volume.SetMetrics keeps the built-in no-op implementation.
func NewVolumeMetrics() volume.Metrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &volumeMetrics{
		probes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "volmeta_probes_total",
				Help: "Total number of mount accessibility probes by resulting status",
			},
			[]string{"status"},
		),
		probeDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "volmeta_probe_duration_seconds",
				Help: "Duration of mount accessibility probes in seconds",
				Buckets: []float64{
					0.001, // 1ms
					0.005, // 5ms
					0.025, // 25ms
					0.1,   // 100ms
					0.5,   // 500ms
					1,
					5, // default probe timeout
					10,
				},
			},
		),
		volumeQueries: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "volmeta_volume_queries_total",
				Help: "Total number of single-volume metadata queries by record status",
			},
			[]string{"status"},
		),
		queryDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "volmeta_volume_query_duration_seconds",
				Help:    "Duration of single-volume metadata queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		enumerations: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "volmeta_enumerations_total",
				Help: "Total number of mount-point enumerations",
			},
		),
		enumerationMounts: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "volmeta_enumeration_mounts",
				Help:    "Number of mounts seen per enumeration",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
			},
		),
		enumerationDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "volmeta_enumeration_duration_seconds",
				Help:    "Duration of mount-point enumerations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *volumeMetrics) RecordProbe(status string, d time.Duration) {
	m.probes.WithLabelValues(status).Inc()
	m.probeDuration.Observe(d.Seconds())
}

func (m *volumeMetrics) RecordVolumeQuery(status string, d time.Duration) {
	m.volumeQueries.WithLabelValues(status).Inc()
	m.queryDuration.Observe(d.Seconds())
}

func (m *volumeMetrics) RecordEnumeration(mounts int, d time.Duration) {
	m.enumerations.Inc()
	m.enumerationMounts.Observe(float64(mounts))
	m.enumerationDuration.Observe(d.Seconds())
}
