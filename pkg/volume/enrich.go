package volume

import (
	"context"
	"fmt"
	"strings"

	"github.com/volmeta/volmeta/internal/logger"
)

// enrichSource is one secondary, platform-specific descriptive source
// (device-tag registry, volume-monitor analogue). Sources only ever add
// cosmetic fields; primary data never depends on them.
type enrichSource interface {
	// name identifies the source in error detail and logs.
	name() string

	// kind selects the ThreadSafetyGate lock serializing this source, or
	// "" when the source is thread-safe by construction.
	kind() SourceKind

	// enrich fills zero or more optional fields of md. A returned error
	// downgrades the record to partial; it never fails the call.
	enrich(h *Handle, md *VolumeMetadata, deviceHint string) error
}

// enrichMetadata merges every secondary source into md, degrading
// gracefully: each source failure is recorded in Status/ErrorDetail and the
// remaining sources still run. md.Status must be StatusReady on entry; on
// return it is StatusHealthy (all attempted sources succeeded) or
// StatusPartial.
//
// Remote volumes short-circuit: once the filesystem type or the platform
// flags identify a network mount, only the remote-identity resolution runs.
// Touching further native descriptors on a remote mount is expensive and
// can block on a dead server.
func enrichMetadata(ctx context.Context, h *Handle, md *VolumeMetadata, deviceHint string) {
	enrichWithSources(ctx, h, md, deviceHint, localSources())
}

func enrichWithSources(ctx context.Context, h *Handle, md *VolumeMetadata, deviceHint string, sources []enrichSource) {
	if entry, err := lookupMountEntry(ctx, md.MountPoint); err != nil {
		downgrade(md, "mount-table", err)
	} else if entry != nil {
		if refinesFSType(md.FileSystemType, entry.FSType) {
			md.FileSystemType = entry.FSType
		}
		if md.MountSource == "" {
			md.MountSource = entry.Source
		}
	}

	if md.IsRemote || isNetworkFileSystem(md.FileSystemType) {
		md.IsRemote = true
		if err := resolveRemote(h, md); err != nil {
			downgrade(md, "remote-identity", err)
		}
		finishEnrichment(md)
		return
	}

	if deviceHint == "" {
		deviceHint = md.MountSource
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			downgrade(md, src.name(), err)
			continue
		}

		run := func() error { return src.enrich(h, md, deviceHint) }

		var err error
		if k := src.kind(); k != "" {
			err = gate.WithExclusiveAccess(k, run)
		} else {
			err = run()
		}
		if err != nil {
			downgrade(md, src.name(), err)
		}
	}

	finishEnrichment(md)
}

// refinesFSType reports whether the mount-table type is a better answer
// than the one read from the descriptor. The table wins only when the
// descriptor gave nothing, or when it gave a generic family name the table
// narrows (fuse versus fuse.sshfs).
func refinesFSType(current, table string) bool {
	if table == "" {
		return false
	}
	if current == "" || current == "unknown" {
		return true
	}
	return table != current && strings.HasPrefix(table, current)
}

// downgrade records a secondary-source failure without failing the call.
func downgrade(md *VolumeMetadata, source string, err error) {
	logger.Debug("enrichment source %s failed for %q: %v", source, md.MountPoint, err)
	md.Status = StatusPartial
	appendDetail(md, fmt.Sprintf("%s: %v", source, err))
}

func finishEnrichment(md *VolumeMetadata) {
	if md.Status == StatusReady {
		md.Status = StatusHealthy
	}
}

func appendDetail(md *VolumeMetadata, detail string) {
	if md.ErrorDetail == "" {
		md.ErrorDetail = detail
		return
	}
	md.ErrorDetail += "; " + detail
}

// fillRemoteIdentity derives host, share, and URI from the mount source.
// Pure string parsing; shared by every platform's resolveRemote.
func fillRemoteIdentity(md *VolumeMetadata) {
	if md.MountSource == "" {
		return
	}
	if md.RemoteHost == "" {
		md.RemoteHost = remoteHost(md.MountSource)
	}
	if md.RemoteShare == "" {
		md.RemoteShare = remoteShare(md.MountSource)
	}
	if md.URI == "" {
		md.URI = remoteURI(md.FileSystemType, md.MountSource)
	}
}
