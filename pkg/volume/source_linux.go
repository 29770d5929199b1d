package volume

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/volmeta/volmeta/internal/logger"
)

func localSources() []enrichSource {
	return []enrichSource{devTagSource{}, uriSource{}}
}

// resolveRemote derives the remote identity from the mount source string;
// the kernel already recorded host and share there at mount time.
func resolveRemote(_ *Handle, md *VolumeMetadata) error {
	fillRemoteIdentity(md)
	return nil
}

// devTagSource resolves label and UUID through the device-tag registry.
// The registry's underlying cache is not reentrant, so the source declares
// the device-registry gate.
type devTagSource struct{}

func (devTagSource) name() string     { return "device-tags" }
func (devTagSource) kind() SourceKind { return SourceDeviceRegistry }

func (devTagSource) enrich(_ *Handle, md *VolumeMetadata, deviceHint string) error {
	if deviceHint == "" || !strings.HasPrefix(deviceHint, "/dev/") {
		// Virtual and unnamed filesystems have no block device to tag.
		return nil
	}

	if err := tagRegistry.open(); err != nil {
		return fmt.Errorf("device tag registry: %v: %w", err, ErrProviderUnavailable)
	}
	defer tagRegistry.release()

	device, err := filepath.EvalSymlinks(deviceHint)
	if err != nil {
		return fmt.Errorf("resolve device %q: %w", deviceHint, err)
	}

	uuid, label := tagRegistry.lookup(device)
	if md.UUID == "" {
		md.UUID = uuid
	}
	if md.Label == "" {
		md.Label = label
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

// devDiskRegistry caches the /dev/disk/by-uuid and /dev/disk/by-label
// symlink farms. The cache is reference counted: overlapping callers share
// one scan, and the maps are dropped when the last caller releases so a
// later call observes freshly created tags.
type devDiskRegistry struct {
	mu      sync.Mutex
	refs    int
	byUUID  map[string]string
	byLabel map[string]string
}

var tagRegistry devDiskRegistry

func (r *devDiskRegistry) open() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		byUUID, err := scanTagDir("/dev/disk/by-uuid")
		if err != nil {
			return err
		}
		byLabel, err := scanTagDir("/dev/disk/by-label")
		if err != nil {
			// Labels are optional; a machine with no labeled volumes has
			// no by-label directory at all.
			logger.Debug("no label tags available: %v", err)
			byLabel = map[string]string{}
		}
		r.byUUID = byUUID
		r.byLabel = byLabel
	}
	r.refs++
	return nil
}

func (r *devDiskRegistry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs == 0 {
		r.byUUID = nil
		r.byLabel = nil
	}
}

// lookup returns the UUID and label tags recorded for a resolved device
// path. Missing tags come back empty.
func (r *devDiskRegistry) lookup(device string) (uuid, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byUUID[device], r.byLabel[device]
}

// scanTagDir maps resolved device paths to tag names for one symlink farm.
func scanTagDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		target, err := filepath.EvalSymlinks(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		tags[target] = unescapeTag(entry.Name())
	}
	return tags, nil
}

// unescapeTag decodes the \xNN escapes udev uses for spaces and other
// reserved bytes in tag names.
func unescapeTag(name string) string {
	if !strings.Contains(name, `\x`) {
		return name
	}

	var b strings.Builder
	for i := 0; i < len(name); {
		if i+3 < len(name) && name[i] == '\\' && name[i+1] == 'x' {
			if v, err := strconv.ParseUint(name[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 4
				continue
			}
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}
