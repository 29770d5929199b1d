package volume

import (
	"path/filepath"
	"strings"
)

func localSources() []enrichSource {
	return []enrichSource{volumeNameSource{}, uriSource{}}
}

// resolveRemote derives the remote identity from the mount source string.
// For smbfs mounts the source carries an optional user prefix
// (//user@host/share) which the host parser strips.
func resolveRemote(_ *Handle, md *VolumeMetadata) error {
	fillRemoteIdentity(md)
	return nil
}

// volumeNameSource derives the user-visible volume name. Mounted volumes
// live under /Volumes with the volume name as the directory name; the boot
// volume has no stable path-derived name and keeps an empty label. The
// monitor session backing richer name queries is thread-affine, so the
// source declares the volume-monitor gate.
type volumeNameSource struct{}

func (volumeNameSource) name() string     { return "volume-name" }
func (volumeNameSource) kind() SourceKind { return SourceVolumeMonitor }

func (volumeNameSource) enrich(_ *Handle, md *VolumeMetadata, _ string) error {
	if md.Label != "" {
		return nil
	}
	if strings.HasPrefix(md.MountPoint, "/Volumes/") {
		md.Label = filepath.Base(md.MountPoint)
	}
	return nil
}

// uriSource supplies the canonical file URI for a local mount.
type uriSource struct{}

func (uriSource) name() string     { return "uri" }
func (uriSource) kind() SourceKind { return "" }

func (uriSource) enrich(_ *Handle, md *VolumeMetadata, _ string) error {
	if md.URI == "" {
		md.URI = "file://" + md.MountPoint
	}
	return nil
}
