package volume

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// probeMountCandidate classifies a drive by its type crossed with whether
// the volume answers an information query. The same failure means different
// things on different drive types: a removable drive that does not answer
// is unplugged, a network drive is disconnected, a fixed drive is broken.
func probeMountCandidate(c MountCandidate) (MountStatus, string) {
	rootp, err := windows.UTF16PtrFromString(driveRoot(c.MountPoint))
	if err != nil {
		return MountError, err.Error()
	}

	driveType := windows.GetDriveType(rootp)

	var (
		volNameBuf [windows.MAX_PATH + 1]uint16
		fsNameBuf  [windows.MAX_PATH + 1]uint16
		serial     uint32
		maxLen     uint32
		flags      uint32
	)
	accessErr := windows.GetVolumeInformation(
		rootp,
		&volNameBuf[0], uint32(len(volNameBuf)),
		&serial, &maxLen, &flags,
		&fsNameBuf[0], uint32(len(fsNameBuf)),
	)

	switch driveType {
	case windows.DRIVE_UNKNOWN:
		return MountUnknown, "drive type could not be determined"

	case windows.DRIVE_NO_ROOT_DIR:
		return MountDisconnected, "no volume mounted at drive root"

	case windows.DRIVE_REMOVABLE:
		if accessErr != nil {
			return MountDisconnected, "removable device not present"
		}

	case windows.DRIVE_REMOTE:
		if accessErr != nil {
			switch accessErr {
			case windows.ERROR_NOT_CONNECTED, windows.ERROR_NOT_READY,
				windows.ERROR_BAD_NETPATH, windows.ERROR_BAD_NET_NAME:
				return MountDisconnected, fmt.Sprintf("network drive unreachable: %v", accessErr)
			case windows.ERROR_ACCESS_DENIED:
				return MountInaccessible, "access denied"
			default:
				return MountError, accessErr.Error()
			}
		}

	case windows.DRIVE_CDROM:
		if accessErr != nil {
			return MountInaccessible, "no media in drive"
		}

	default: // DRIVE_FIXED, DRIVE_RAMDISK
		if accessErr != nil {
			if accessErr == windows.ERROR_ACCESS_DENIED {
				return MountInaccessible, "access denied"
			}
			return MountError, accessErr.Error()
		}
	}

	return MountHealthy, ""
}
