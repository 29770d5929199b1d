package volume

import "time"

// Default option values, matching the limits the probe scheduler and the
// enrichment aggregator are tuned for.
const (
	// DefaultTimeout bounds each probe and each metadata call.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxConcurrent caps how many accessibility probes run at once
	// during enumeration. Small on purpose: each probe is one blocking
	// syscall, and machines with hundreds of mounts should not spawn
	// hundreds of OS threads.
	DefaultMaxConcurrent = 8
)

// Options tune a metadata query or a mount enumeration.
//
// The zero value is usable; Normalize fills in defaults.
type Options struct {
	// Timeout is the per-probe (enumeration) or per-operation (single
	// volume) ceiling. Zero means DefaultTimeout.
	Timeout time.Duration

	// Device is an optional hint naming the device backing the mount
	// (/dev/sda1). When set, device-tag enrichment sources use it instead
	// of resolving the device from the mount table.
	Device string

	// SkipNetworkVolumes short-circuits remote volumes: their records are
	// returned from the mount table alone, without touching native
	// descriptors that can block on a dead server.
	SkipNetworkVolumes bool

	// MaxConcurrent caps concurrent probes during enumeration. Zero means
	// DefaultMaxConcurrent.
	MaxConcurrent int

	// RateLimit caps probe launches per second during enumeration.
	// Zero means unlimited.
	RateLimit uint
}

// Normalize returns a copy of o with zero fields replaced by defaults.
func (o Options) Normalize() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	return o
}
