package volume

import "errors"

// ============================================================================
// Standard Volume Errors
// ============================================================================

// These errors classify every failure mode of volume metadata queries and
// mount-point enumeration. Callers should match with errors.Is and treat the
// concrete message (operation name plus OS error) as diagnostic detail only.
//
// Usage Pattern:
//
//	md, err := volume.GetVolumeMetadata(ctx, mountPoint, opts)
//	if err != nil {
//	    if errors.Is(err, volume.ErrNotFound) {
//	        // mount point vanished
//	    }
//	    ...
//	}
//
// Error Wrapping:
// Platform code wraps these errors with the failing operation and OS error:
//
//	return fmt.Errorf("statfs %q: %v: %w", path, errno, ErrUnknown)

var (
	// ErrInvalidPath indicates the input path failed validation.
	//
	// This error is returned when:
	//   - the path is empty
	//   - the path contains an embedded NUL byte
	//   - canonicalization failed (and the parent fallback also failed)
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound indicates an ENOENT-class failure: the path, or the mount
	// point behind it, does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrPermissionDenied indicates the effective credentials may not access
	// the path.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrOverflow indicates a capacity computation would overflow uint64.
	//
	// Returned instead of a silently wrapped value; the whole metadata call
	// fails because the primary figures would be garbage.
	ErrOverflow = errors.New("capacity calculation would overflow")

	// ErrProviderUnavailable indicates a secondary enrichment source could
	// not be reached. It never fails a metadata call on its own: the
	// aggregator downgrades the record status to partial and records the
	// detail instead.
	ErrProviderUnavailable = errors.New("metadata provider unavailable")

	// ErrTimeout indicates a probe or enrichment exceeded its budget.
	//
	// During enumeration this downgrades a single entry to disconnected and
	// never aborts the batch.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnknown classifies any OS failure not covered above. The wrapped
	// message always carries the operation name and the raw OS error.
	ErrUnknown = errors.New("unclassified error")
)
