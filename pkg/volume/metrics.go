package volume

import (
	"sync/atomic"
	"time"
)

// Metrics provides observability for volume operations.
//
// This interface is optional: if SetMetrics is never called, operations
// proceed with a no-op implementation and zero overhead. The Prometheus
// implementation lives in pkg/metrics to keep this package free of a
// mandatory metrics dependency.
type Metrics interface {
	// RecordProbe is called once per finished (or abandoned) mount probe
	// with the resulting status and the observed duration.
	RecordProbe(status string, d time.Duration)

	// RecordVolumeQuery is called once per GetVolumeMetadata call with the
	// final record status ("error" when the call failed) and its duration.
	RecordVolumeQuery(status string, d time.Duration)

	// RecordEnumeration is called once per GetVolumeMountPoints call with
	// the number of mounts seen and the total duration.
	RecordEnumeration(mounts int, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordProbe(string, time.Duration)       {}
func (noopMetrics) RecordVolumeQuery(string, time.Duration) {}
func (noopMetrics) RecordEnumeration(int, time.Duration)    {}

var activeMetrics atomic.Pointer[Metrics]

// SetMetrics installs a metrics sink for all subsequent operations.
// Typically called once at startup; passing nil restores the no-op sink.
//
// Thread safety:
// Safe to call concurrently with running operations.
func SetMetrics(m Metrics) {
	if m == nil {
		activeMetrics.Store(nil)
		return
	}
	activeMetrics.Store(&m)
}

func currentMetrics() Metrics {
	if p := activeMetrics.Load(); p != nil {
		return *p
	}
	return noopMetrics{}
}
