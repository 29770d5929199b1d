//go:build windows

package volume

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// driveRoot derives the `X:\`-form root GetDriveType and WNet calls expect
// from any absolute path on the volume.
func driveRoot(path string) string {
	vol := filepath.VolumeName(path)
	if vol == "" {
		return path
	}
	return vol + `\`
}

// statHandle reads capacity and the basic filesystem type for the held
// handle. Windows reports byte totals rather than blocks, so the capacity
// calculator is fed blockSize=1. The filesystem name comes from the handle
// itself (GetVolumeInformationByHandle), never from re-resolving the path;
// only the free-space query is path-based because no by-handle variant
// exists.
func statHandle(h *Handle) (volumeStat, error) {
	var fsNameBuf [windows.MAX_PATH + 1]uint16
	var serial, maxComponentLen, fsFlags uint32

	if err := windows.GetVolumeInformationByHandle(
		h.h,
		nil, 0,
		&serial,
		&maxComponentLen,
		&fsFlags,
		&fsNameBuf[0], uint32(len(fsNameBuf)),
	); err != nil {
		return volumeStat{}, wrapOSError("GetVolumeInformationByHandle", h.path, err)
	}

	pathp, err := windows.UTF16PtrFromString(h.path)
	if err != nil {
		return volumeStat{}, wrapOSError("utf16", h.path, err)
	}

	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(pathp, &freeToCaller, &total, &totalFree); err != nil {
		return volumeStat{}, wrapOSError("GetDiskFreeSpaceEx", h.path, err)
	}

	rootp, err := windows.UTF16PtrFromString(driveRoot(h.path))
	if err != nil {
		return volumeStat{}, wrapOSError("utf16", h.path, err)
	}

	return volumeStat{
		blockSize:   1,
		totalBlocks: total,
		freeBlocks:  totalFree,
		availBlocks: freeToCaller,
		fsType:      windows.UTF16ToString(fsNameBuf[:]),
		remote:      windows.GetDriveType(rootp) == windows.DRIVE_REMOTE,
	}, nil
}
