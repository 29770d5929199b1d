// Package metrics exposes Prometheus instrumentation for volume queries,
// mount enumeration, and accessibility probes.
//
// The whole package is opt-in. Until InitRegistry runs, NewVolumeMetrics
// hands out a no-op recorder and the volume package pays nothing for
// instrumentation it is not using.
//
// Typical wiring in main:
//
//	metrics.InitRegistry()
//	volume.SetMetrics(metrics.NewVolumeMetrics())
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// The registry is written exactly once, under registryOnce, and read
// freely afterwards. sync.Once orders the write before every read that
// observes it, so no further locking is needed.
var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry creates the process-wide registry. Call it before building
// any recorder; repeated calls are no-ops. Skipping it entirely leaves
// metrics disabled.
func InitRegistry() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
	})
}

// GetRegistry returns the process-wide registry, or nil while metrics are
// disabled. The nil result is what an HTTP exporter or recorder checks
// before registering collectors.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled reports whether InitRegistry has run.
func IsEnabled() bool {
	return GetRegistry() != nil
}
