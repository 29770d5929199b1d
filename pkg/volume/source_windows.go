package volume

import (
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modmpr                 = windows.NewLazySystemDLL("mpr.dll")
	procWNetGetConnectionW = modmpr.NewProc("WNetGetConnectionW")
)

func localSources() []enrichSource {
	return []enrichSource{volumeInfoSource{}, uriSource{}}
}

// resolveRemote asks the network provider for the UNC name behind a mapped
// drive, then parses host and share out of it. Drives mounted directly by
// UNC path already carry the name in the mount source.
func resolveRemote(h *Handle, md *VolumeMetadata) error {
	if md.MountSource == "" {
		local := strings.TrimSuffix(driveRoot(h.Path()), `\`)
		unc, err := wnetGetConnection(local)
		if err != nil {
			return fmt.Errorf("resolve network name for %s: %v: %w", local, err, ErrProviderUnavailable)
		}
		md.MountSource = unc
	}
	// UNC backslashes; the parsers speak forward slashes.
	md.MountSource = strings.ReplaceAll(md.MountSource, `\`, "/")
	fillRemoteIdentity(md)
	return nil
}

// wnetGetConnection wraps WNetGetConnectionW, which lives in mpr.dll and
// has no x/sys binding. WNet APIs return the error code directly rather
// than through GetLastError.
func wnetGetConnection(localName string) (string, error) {
	lp, err := windows.UTF16PtrFromString(localName)
	if err != nil {
		return "", err
	}

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	ret, _, _ := procWNetGetConnectionW.Call(
		uintptr(unsafe.Pointer(lp)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if ret != 0 {
		return "", syscall.Errno(ret)
	}
	return windows.UTF16ToString(buf), nil
}

// volumeInfoSource reads the volume label and serial number through the
// held descriptor, so a concurrent unmount cannot redirect the query.
type volumeInfoSource struct{}

func (volumeInfoSource) name() string     { return "volume-info" }
func (volumeInfoSource) kind() SourceKind { return "" }

func (volumeInfoSource) enrich(h *Handle, md *VolumeMetadata, _ string) error {
	var (
		labelBuf  [windows.MAX_PATH + 1]uint16
		serial    uint32
		maxLen    uint32
		flags     uint32
		fsNameBuf [windows.MAX_PATH + 1]uint16
	)
	err := windows.GetVolumeInformationByHandle(
		h.h,
		&labelBuf[0], uint32(len(labelBuf)),
		&serial, &maxLen, &flags,
		&fsNameBuf[0], uint32(len(fsNameBuf)),
	)
	if err != nil {
		return fmt.Errorf("query volume information: %w", err)
	}

	if md.Label == "" {
		md.Label = windows.UTF16ToString(labelBuf[:])
	}
	if md.UUID == "" && serial != 0 {
		md.UUID = fmt.Sprintf("%08X", serial)
	}
	return nil
}

// uriSource supplies the canonical file URI for a local drive, with the
// drive letter spelled the way file URIs expect (file:///C:/path).
type uriSource struct{}

func (uriSource) name() string     { return "uri" }
func (uriSource) kind() SourceKind { return "" }

func (uriSource) enrich(_ *Handle, md *VolumeMetadata, _ string) error {
	if md.URI == "" {
		md.URI = "file:///" + strings.ReplaceAll(md.MountPoint, `\`, "/")
	}
	return nil
}
