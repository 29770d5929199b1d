//go:build linux || darwin

package volume

import (
	"golang.org/x/sys/unix"

	"github.com/volmeta/volmeta/internal/logger"
)

// Handle pins a validated path to an open file descriptor.
//
// Resolving a path and later re-opening it by name admits a race: the
// filesystem object can be replaced or unmounted between the check and the
// use. A Handle is opened exactly once from the canonical path; every
// subsequent query (fstatfs, fstat, fchflags) goes through the held
// descriptor, which keeps referring to the original filesystem object no
// matter what happens to the name.
//
// Callers must Close the handle on every exit path; the package's own
// callers do so with defer immediately after Open succeeds.
type Handle struct {
	fd   int
	path string
}

// openHandle opens the canonical path read-only. Mount roots are opened
// with O_DIRECTORY so a file smuggled in at the path fails fast;
// hidden-attribute targets are plain files and pass dirOnly=false.
//
// O_NOFOLLOW is deliberately absent: the path is already symlink-free from
// canonicalization, and the final component of a mount root is never a
// symlink after EvalSymlinks.
func openHandle(canonical string, dirOnly bool) (*Handle, error) {
	flags := unix.O_RDONLY | unix.O_CLOEXEC
	if dirOnly {
		flags |= unix.O_DIRECTORY
	}

	fd, err := unix.Open(canonical, flags, 0)
	if err != nil {
		return nil, wrapOSError("open", canonical, err)
	}

	logger.Debug("opened handle fd=%d for %q", fd, canonical)
	return &Handle{fd: fd, path: canonical}, nil
}

// Close releases the descriptor. Safe to call once; the handle is not
// reusable afterwards.
func (h *Handle) Close() error {
	if h.fd < 0 {
		return nil
	}
	fd := h.fd
	h.fd = -1
	if err := unix.Close(fd); err != nil {
		return wrapOSError("close", h.path, err)
	}
	return nil
}

// Path returns the canonical path the handle was opened from.
func (h *Handle) Path() string {
	return h.path
}

// fstat stats the held descriptor, never the name.
func (h *Handle) fstat() (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Fstat(h.fd, &st); err != nil {
		return st, wrapOSError("fstat", h.path, err)
	}
	return st, nil
}
