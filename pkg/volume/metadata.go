package volume

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/volmeta/volmeta/internal/logger"
)

// volumeStat carries the primary figures read from the volume's own
// descriptor. Block counts stay in native units; ComputeCapacity turns them
// into bytes with overflow checks.
type volumeStat struct {
	blockSize   uint64
	totalBlocks uint64
	freeBlocks  uint64
	availBlocks uint64
	fsType      string
	mountSource string
	remote      bool
}

// GetVolumeMetadata resolves the full metadata record for the volume mounted
// at mountPoint.
//
// The path is canonicalized exactly once, then a single descriptor is opened
// on the canonical path and every query runs against that descriptor, so
// concurrent renames of path components cannot redirect the call to a
// different volume. Primary figures (capacity, filesystem type) come from
// the descriptor; secondary descriptive sources (label, UUID, remote
// identity) merge in afterwards and degrade the record to StatusPartial on
// failure instead of failing the call.
//
// Parameters:
//   - ctx: cancels the call; Options.Timeout additionally bounds the
//     secondary-source phase
//   - mountPoint: path anywhere on the target volume
//   - opts: per-call options; the zero value selects defaults
//
// Returns the metadata record, or an error wrapping one of the package
// sentinels (ErrInvalidPath, ErrNotFound, ErrPermissionDenied, ErrOverflow,
// ErrUnknown) when the primary figures cannot be read at all.
//
// Thread safety: safe for concurrent use. Thread-affine descriptive sources
// are serialized internally.
func GetVolumeMetadata(ctx context.Context, mountPoint string, opts Options) (*VolumeMetadata, error) {
	opts = opts.Normalize()
	start := time.Now()

	md, err := getVolumeMetadata(ctx, mountPoint, opts)

	status := "error"
	if err == nil {
		status = string(md.Status)
	}
	currentMetrics().RecordVolumeQuery(status, time.Since(start))
	return md, err
}

func getVolumeMetadata(ctx context.Context, mountPoint string, opts Options) (*VolumeMetadata, error) {
	canonical, err := ValidatePath(mountPoint, false)
	if err != nil {
		return nil, err
	}

	// Any path on the volume answers for the volume. Non-directories are
	// queried through their parent directory so the descriptor open never
	// blocks on special files.
	anchor := canonical
	if info, err := os.Stat(canonical); err != nil {
		return nil, wrapOSError("stat", canonical, err)
	} else if !info.IsDir() {
		anchor = filepath.Dir(canonical)
	}

	h, err := openHandle(anchor, true)
	if err != nil {
		return nil, wrapOSError("open volume", canonical, err)
	}

	st, err := statHandle(h)
	if err != nil {
		h.Close()
		return nil, wrapOSError("stat volume", canonical, err)
	}

	capacity, err := ComputeCapacity(st.blockSize, st.totalBlocks, st.freeBlocks, st.availBlocks)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("volume %q: %w", canonical, err)
	}

	md := &VolumeMetadata{
		MountPoint:     canonical,
		FileSystemType: st.fsType,
		SizeBytes:      capacity.SizeBytes,
		UsedBytes:      capacity.UsedBytes,
		AvailableBytes: capacity.AvailableBytes,
		MountSource:    st.mountSource,
		IsRemote:       st.remote,
		Status:         StatusReady,
		IsSystemVolume: isSystemMount(MountCandidate{MountPoint: canonical, FSType: st.fsType, Source: st.mountSource}),
	}
	if capacity.Clamped {
		logger.Debug("capacity figures for %q clamped to restore invariants", canonical)
	}
	if capacity.exceedsExactJSONRange() {
		appendDetail(md, "capacity exceeds exact integer range of JSON numbers")
	}

	if (md.IsRemote || isNetworkFileSystem(md.FileSystemType)) && opts.SkipNetworkVolumes {
		// Caller asked not to touch network volumes beyond the figures we
		// already hold. Identity comes from string parsing only.
		md.IsRemote = true
		fillRemoteIdentity(md)
		finishEnrichment(md)
		h.Close()
		return md, nil
	}

	return enrichWithTimeout(ctx, h, md, opts, enrichMetadata)
}

type enrichFunc func(ctx context.Context, h *Handle, md *VolumeMetadata, deviceHint string)

// enrichWithTimeout runs the secondary-source phase in its own goroutine so
// a hung provider cannot block the caller past the deadline. The goroutine
// owns the descriptor from this point on and closes it when it finishes,
// even after the caller has given up and returned a partial record.
//
// The record is snapshotted before the goroutine starts: the worker mutates
// only its own copy, and the timeout and cancellation branches mutate only
// the original, so an abandoned worker can keep writing without racing the
// caller.
func enrichWithTimeout(ctx context.Context, h *Handle, md *VolumeMetadata, opts Options, enrich enrichFunc) (*VolumeMetadata, error) {
	worker := new(VolumeMetadata)
	*worker = *md

	done := make(chan *VolumeMetadata, 1)
	go func() {
		if h != nil {
			defer h.Close()
		}
		enrich(ctx, h, worker, opts.Device)
		done <- worker
	}()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()

	select {
	case enriched := <-done:
		return enriched, nil
	case <-timer.C:
		logger.Warn("enrichment for %q abandoned after %s", md.MountPoint, opts.Timeout)
		md.Status = StatusPartial
		appendDetail(md, fmt.Sprintf("metadata enrichment timed out after %s", opts.Timeout))
		return md, nil
	case <-ctx.Done():
		md.Status = StatusPartial
		appendDetail(md, fmt.Sprintf("metadata enrichment cancelled: %v", ctx.Err()))
		return md, nil
	}
}
