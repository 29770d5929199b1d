//go:build linux || darwin

package volume

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// probeMountCandidate checks whether a mounted filesystem is reachable.
// A plain access check is enough to force the filesystem to answer; on a
// dead network mount it blocks, which the scheduler's deadline turns into
// MountDisconnected.
func probeMountCandidate(c MountCandidate) (MountStatus, string) {
	err := unix.Faccessat(unix.AT_FDCWD, c.MountPoint, unix.R_OK, unix.AT_EACCESS)
	if err == nil {
		return MountHealthy, ""
	}

	switch err {
	case unix.EACCES, unix.EPERM:
		return MountInaccessible, "access denied"
	case unix.ESTALE, unix.ENOTCONN, unix.EHOSTDOWN, unix.EHOSTUNREACH, unix.ETIMEDOUT:
		return MountDisconnected, fmt.Sprintf("filesystem unreachable: %v", err)
	case unix.ENOENT:
		return MountError, "mount point no longer exists"
	default:
		return MountError, err.Error()
	}
}
