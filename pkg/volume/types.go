// Package volume reports volume metadata (capacity, filesystem type, label,
// UUID, remote share identity, health status) and enumerates mount points for
// the host machine on linux, darwin, and windows.
//
// The package exposes three operation families:
//
//   - GetVolumeMetadata: full metadata for a single mount point
//   - GetVolumeMountPoints: concurrent, health-probed mount enumeration
//   - GetHiddenAttribute / SetHiddenAttribute: per-file hidden flag
//
// All operations validate and canonicalize their input path, then perform
// every subsequent query through a single held descriptor so that the path
// cannot be swapped underneath the call (TOCTOU). Capacity figures are the
// primary data and always required; labels, UUIDs, and remote identity come
// from secondary providers that may fail without failing the call.
package volume

// Status describes the health of a volume metadata record.
type Status string

const (
	// StatusReady means the primary capacity query succeeded and no
	// enrichment has been attempted yet.
	StatusReady Status = "ready"

	// StatusHealthy means every attempted enrichment succeeded.
	StatusHealthy Status = "healthy"

	// StatusPartial means capacity succeeded but at least one secondary
	// source failed; the record carries the detail in ErrorDetail.
	StatusPartial Status = "partial"

	// StatusError means the primary capacity query itself failed. Records
	// with this status are never returned; the call fails instead.
	StatusError Status = "error"
)

// MountStatus describes the outcome of a single mount-point accessibility
// probe during enumeration.
type MountStatus string

const (
	// MountHealthy: the probe succeeded and the mount is accessible.
	MountHealthy MountStatus = "healthy"

	// MountInaccessible: the probe succeeded but access was denied to the
	// effective credentials.
	MountInaccessible MountStatus = "inaccessible"

	// MountDisconnected: the probe timed out or hit a known
	// disconnected-network error. Not treated as a failure.
	MountDisconnected MountStatus = "disconnected"

	// MountError: the probe failed unexpectedly; detail is retained.
	MountError MountStatus = "error"

	// MountUnknown: enumeration produced no usable status for the entry.
	MountUnknown MountStatus = "unknown"
)

// VolumeMetadata is the merged result of a single-volume metadata query.
//
// One record is created per call and is immutable once returned. The size
// invariant UsedBytes + AvailableBytes <= SizeBytes always holds: platforms
// that compute used space by subtraction are clamped during capacity
// calculation (reserved-block filesystems such as ext4 would otherwise
// report used space exceeding the remaining headroom).
//
// Size fields are exact uint64 byte counts. Values above 2^53 cannot
// round-trip through a double-precision JSON consumer; such records carry a
// note in ErrorDetail rather than a truncated figure.
type VolumeMetadata struct {
	// MountPoint is the canonicalized mount point the query resolved to.
	MountPoint string `json:"mountPoint"`

	// Label is the volume label, when a secondary source supplied one.
	Label string `json:"label,omitempty"`

	// FileSystemType is the filesystem type name (ext4, apfs, ntfs, nfs...).
	FileSystemType string `json:"fileSystem,omitempty"`

	// SizeBytes is the total capacity of the volume in bytes.
	SizeBytes uint64 `json:"size"`

	// UsedBytes is the space in use, clamped so that
	// UsedBytes + AvailableBytes <= SizeBytes.
	UsedBytes uint64 `json:"used"`

	// AvailableBytes is the space available to unprivileged callers.
	AvailableBytes uint64 `json:"available"`

	// UUID identifies the volume when a secondary source supplied one.
	// On windows this is the 8-digit uppercase-hex volume serial.
	UUID string `json:"uuid,omitempty"`

	// MountSource is the device or URI the volume was mounted from
	// (/dev/sda1, hostname:/export, //host/share).
	MountSource string `json:"mountFrom,omitempty"`

	// URI is a canonical URI for the volume root, when derivable.
	URI string `json:"uri,omitempty"`

	// IsRemote reports whether the volume is a network filesystem.
	IsRemote bool `json:"remote"`

	// RemoteHost is the host part of a remote mount source.
	RemoteHost string `json:"remoteHost,omitempty"`

	// RemoteShare is the exported share/path part of a remote mount source.
	RemoteShare string `json:"remoteShare,omitempty"`

	// IsSystemVolume reports whether this mount belongs to the operating
	// system rather than user data (proc, the windows system drive, ...).
	IsSystemVolume bool `json:"isSystemVolume"`

	// Status is the degrade-gracefully health of this record.
	Status Status `json:"status"`

	// ErrorDetail accumulates the reasons for a partial status, separated
	// by "; ". Empty for healthy records.
	ErrorDetail string `json:"error,omitempty"`
}

// MountPointEntry is one discovered mount within an enumeration result.
//
// Entries are created during a single enumeration call and are not cached
// across calls. The result slice preserves mount-table order regardless of
// probe completion order.
type MountPointEntry struct {
	// MountPoint is the filesystem-visible root of the mount.
	MountPoint string `json:"mountPoint"`

	// FileSystemType is the filesystem type name, when the mount table
	// provided one.
	FileSystemType string `json:"fstype,omitempty"`

	// Status is the outcome of this entry's accessibility probe.
	Status MountStatus `json:"status"`

	// IsSystemVolume reports whether this mount belongs to the OS.
	IsSystemVolume bool `json:"isSystemVolume"`

	// ErrorDetail describes a probe failure, for error-status entries.
	ErrorDetail string `json:"error,omitempty"`
}
