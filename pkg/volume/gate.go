package volume

import "sync"

// SourceKind names a metadata provider whose native state is usable from
// only one logical thread at a time.
type SourceKind string

const (
	// SourceDeviceRegistry is the device-tag (label/UUID) registry; its
	// cache object is refcounted and must not be opened concurrently.
	SourceDeviceRegistry SourceKind = "device-registry"

	// SourceVolumeMonitor is the richer OS metadata provider (the
	// disk-arbitration / volume-monitor analogue on each platform).
	SourceVolumeMonitor SourceKind = "volume-monitor"
)

// ThreadSafetyGate serializes access to metadata providers that are
// documented as single-threaded, while metadata calls themselves run
// concurrently.
//
// The gate holds one mutex per source kind, so serializing one provider
// does not stall callers of another. Primary data (capacity, filesystem
// type, accessibility) never passes through the gate: only secondary
// cosmetic fields (label, UUID, URI) may depend on a gated provider, and
// those are best-effort by design.
//
// Thread safety:
// All methods are safe for concurrent use. The zero value is ready to use.
type ThreadSafetyGate struct {
	mu    sync.Mutex
	locks map[SourceKind]*sync.Mutex
}

// gate is the process-wide instance. Providers are process-wide native
// state, so the gate must be too.
var gate ThreadSafetyGate

// WithExclusiveAccess runs fn while holding the lock for the given source
// kind. Calls for different kinds proceed in parallel; calls for the same
// kind are serialized in arrival order.
func (g *ThreadSafetyGate) WithExclusiveAccess(kind SourceKind, fn func() error) error {
	g.mu.Lock()
	if g.locks == nil {
		g.locks = make(map[SourceKind]*sync.Mutex)
	}
	lock, ok := g.locks[kind]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[kind] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn()
}
