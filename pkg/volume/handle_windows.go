//go:build windows

package volume

import (
	"golang.org/x/sys/windows"

	"github.com/volmeta/volmeta/internal/logger"
)

// Handle pins a validated path to an open file handle.
//
// Resolving a path and later re-opening it by name admits a race: the
// filesystem object can be replaced or unmounted between the check and the
// use. A Handle is opened exactly once from the canonical path; every
// subsequent query (GetVolumeInformationByHandle, by-handle attribute
// reads and writes) goes through the held handle.
//
// Callers must Close the handle on every exit path; the package's own
// callers do so with defer immediately after Open succeeds.
type Handle struct {
	h    windows.Handle
	path string
}

// openHandle opens the canonical path without read/write access to the
// file data (attribute and volume queries need none). Directories require
// FILE_FLAG_BACKUP_SEMANTICS to be opened at all; dirOnly only controls
// whether a non-directory target is rejected afterwards.
func openHandle(canonical string, dirOnly bool) (*Handle, error) {
	pathp, err := windows.UTF16PtrFromString(canonical)
	if err != nil {
		return nil, wrapOSError("utf16", canonical, err)
	}

	h, err := windows.CreateFile(
		pathp,
		0, // attribute access only
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, wrapOSError("CreateFile", canonical, err)
	}

	if dirOnly {
		var info windows.ByHandleFileInformation
		if err := windows.GetFileInformationByHandle(h, &info); err != nil {
			windows.CloseHandle(h)
			return nil, wrapOSError("GetFileInformationByHandle", canonical, err)
		}
		if info.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
			windows.CloseHandle(h)
			return nil, wrapOSError("open", canonical, windows.ERROR_DIRECTORY)
		}
	}

	logger.Debug("opened handle %v for %q", h, canonical)
	return &Handle{h: h, path: canonical}, nil
}

// Close releases the handle. Safe to call once; the handle is not reusable
// afterwards.
func (h *Handle) Close() error {
	if h.h == windows.InvalidHandle || h.h == 0 {
		return nil
	}
	handle := h.h
	h.h = windows.InvalidHandle
	if err := windows.CloseHandle(handle); err != nil {
		return wrapOSError("CloseHandle", h.path, err)
	}
	return nil
}

// Path returns the canonical path the handle was opened from.
func (h *Handle) Path() string {
	return h.path
}
