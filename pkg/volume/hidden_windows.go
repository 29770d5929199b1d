package volume

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Hidden on windows is the FILE_ATTRIBUTE_HIDDEN attribute. Both the query
// and the mutation go through a single open handle so the attribute bits
// read, modified, and written all belong to the same filesystem object;
// re-resolving the name between the read and the write would admit the
// same swap race openHandle exists to close.

// openAttrHandle opens the canonical path for attribute access only. The
// write flag adds FILE_WRITE_ATTRIBUTES for the set side.
func openAttrHandle(canonical string, write bool) (windows.Handle, error) {
	pathp, err := windows.UTF16PtrFromString(canonical)
	if err != nil {
		return windows.InvalidHandle, wrapOSError("utf16", canonical, err)
	}
	access := uint32(windows.FILE_READ_ATTRIBUTES)
	if write {
		access |= windows.FILE_WRITE_ATTRIBUTES
	}
	h, err := windows.CreateFile(
		pathp,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return windows.InvalidHandle, wrapOSError("CreateFile", canonical, err)
	}
	return h, nil
}

// fileBasicInfo mirrors the Win32 FILE_BASIC_INFO layout used with the
// FileBasicInfo information class. The trailing pad keeps the size at 40
// bytes on every architecture; the kernel rejects shorter buffers.
type fileBasicInfo struct {
	CreationTime   int64
	LastAccessTime int64
	LastWriteTime  int64
	ChangeTime     int64
	FileAttributes uint32
	_              uint32
}

func basicInfoByHandle(h windows.Handle, canonical string) (fileBasicInfo, error) {
	var info fileBasicInfo
	err := windows.GetFileInformationByHandleEx(
		h,
		windows.FileBasicInfo,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err != nil {
		return info, wrapOSError("query attributes", canonical, err)
	}
	return info, nil
}

func getHiddenAttribute(canonical string) (bool, error) {
	h, err := openAttrHandle(canonical, false)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(h)

	info, err := basicInfoByHandle(h, canonical)
	if err != nil {
		return false, err
	}
	return info.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0, nil
}

func setHiddenAttribute(canonical string, hidden bool) error {
	h, err := openAttrHandle(canonical, true)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	info, err := basicInfoByHandle(h, canonical)
	if err != nil {
		return err
	}

	next := info.FileAttributes
	if hidden {
		next |= windows.FILE_ATTRIBUTE_HIDDEN
	} else {
		next &^= windows.FILE_ATTRIBUTE_HIDDEN
	}
	if next == info.FileAttributes {
		return nil
	}
	if next == 0 {
		next = windows.FILE_ATTRIBUTE_NORMAL
	}

	info.FileAttributes = next
	err = windows.SetFileInformationByHandle(
		h,
		windows.FileBasicInfo,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err != nil {
		return wrapOSError("set attributes", canonical, err)
	}
	return nil
}
