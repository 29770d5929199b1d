package volume

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/volmeta/volmeta/internal/logger"
)

// mountEntry is one row of the system mount table.
type mountEntry struct {
	MountPoint string
	FSType     string
	Source     string
}

// listMountEntries reads the current mount table. The underlying
// enumeration primitive is reentrant on every platform, so no gate lock is
// needed here.
func listMountEntries(ctx context.Context) ([]mountEntry, error) {
	parts, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	entries := make([]mountEntry, 0, len(parts))
	for _, p := range parts {
		entries = append(entries, mountEntry{
			MountPoint: p.Mountpoint,
			FSType:     p.Fstype,
			Source:     p.Device,
		})
	}
	return entries, nil
}

// lookupMountEntry finds the mount-table row governing path: the exact
// match when path is itself a mount point, otherwise the longest mount
// point prefixing it. Returns nil when no row matches.
func lookupMountEntry(ctx context.Context, path string) (*mountEntry, error) {
	entries, err := listMountEntries(ctx)
	if err != nil {
		return nil, err
	}
	return bestMountEntry(entries, path), nil
}

func bestMountEntry(entries []mountEntry, path string) *mountEntry {
	var best *mountEntry
	for i := range entries {
		e := &entries[i]
		if !mountCovers(e.MountPoint, path) {
			continue
		}
		if best == nil || len(e.MountPoint) > len(best.MountPoint) {
			best = e
		}
	}
	return best
}

// mountCovers reports whether a mount at mp contains path. Windows paths
// compare case-insensitively; unix paths are case-sensitive, so /mnt/data
// does not cover /MNT/data.
func mountCovers(mp, path string) bool {
	if mp == "" {
		return false
	}
	fold := separatorFor(mp) == `\`
	if fold && strings.EqualFold(mp, path) {
		return true
	}
	if !fold && mp == path {
		return true
	}
	prefix := mp
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, `\`) {
		prefix += separatorFor(mp)
	}
	if len(path) < len(prefix) {
		return false
	}
	if fold {
		return strings.EqualFold(path[:len(prefix)], prefix)
	}
	return strings.HasPrefix(path, prefix)
}

func separatorFor(mp string) string {
	if strings.Contains(mp, `\`) || (len(mp) >= 2 && mp[1] == ':') {
		return `\`
	}
	return "/"
}

// splitProbeCandidates partitions the mount table into rows to probe and
// rows reported as-is. results holds one slot per table row in table
// order; candidateIdx[i] is the results slot candidates[i] writes back to.
//
// With skipNetwork set, network mounts keep their entry but are never
// touched: their status stays unknown with the reason in ErrorDetail, so
// the caller still sees one entry per mount without risking a hang on a
// dead server.
func splitProbeCandidates(entries []mountEntry, skipNetwork bool) ([]MountPointEntry, []MountCandidate, []int) {
	results := make([]MountPointEntry, len(entries))
	candidates := make([]MountCandidate, 0, len(entries))
	candidateIdx := make([]int, 0, len(entries))

	for i, e := range entries {
		c := MountCandidate{
			MountPoint: e.MountPoint,
			FSType:     e.FSType,
			Source:     e.Source,
		}
		results[i] = MountPointEntry{
			MountPoint:     e.MountPoint,
			FileSystemType: e.FSType,
			Status:         MountUnknown,
			IsSystemVolume: isSystemMount(c),
		}
		if skipNetwork && isNetworkFileSystem(e.FSType) {
			logger.Debug("not probing network mount %q (%s)", e.MountPoint, e.FSType)
			results[i].ErrorDetail = "network mount not probed"
			continue
		}
		candidates = append(candidates, c)
		candidateIdx = append(candidateIdx, i)
	}
	return results, candidates, candidateIdx
}

// GetVolumeMountPoints enumerates the system mount table and probes each
// mount point for accessibility.
//
// Each mount is probed concurrently with a hard per-probe deadline; a mount
// whose filesystem hangs (a dead network server, a stale descriptor) is
// reported as disconnected without delaying the rest of the result. The
// result preserves mount-table order regardless of probe completion order.
// With SkipNetworkVolumes set, network mounts are still listed but left
// unprobed.
//
// Parameters:
//   - ctx: cancels the enumeration; probes not yet dispatched report
//     status unknown
//   - opts: per-call options; the zero value selects defaults
//
// Returns one entry per mount, or an error only when the mount table itself
// cannot be read.
//
// Thread safety: safe for concurrent use.
func GetVolumeMountPoints(ctx context.Context, opts Options) ([]MountPointEntry, error) {
	opts = opts.Normalize()
	start := time.Now()

	entries, err := listMountEntries(ctx)
	if err != nil {
		return nil, wrapOSError("enumerate mounts", "", err)
	}

	results, candidates, candidateIdx := splitProbeCandidates(entries, opts.SkipNetworkVolumes)

	scheduler := newProbeScheduler(opts, nil)
	for i, probed := range scheduler.ProbeAll(ctx, candidates) {
		results[candidateIdx[i]] = probed
	}

	currentMetrics().RecordEnumeration(len(results), time.Since(start))
	return results, nil
}
