package volume

import (
	"golang.org/x/sys/unix"
)

// Hidden on darwin is the UF_HIDDEN file flag. Both operations run against
// a descriptor opened on the canonical path, so the flag cannot land on a
// file swapped in after validation.

func getHiddenAttribute(canonical string) (bool, error) {
	h, err := openHandle(canonical, false)
	if err != nil {
		return false, wrapOSError("open", canonical, err)
	}
	defer h.Close()

	st, err := h.fstat()
	if err != nil {
		return false, wrapOSError("stat", canonical, err)
	}
	return st.Flags&unix.UF_HIDDEN != 0, nil
}

func setHiddenAttribute(canonical string, hidden bool) error {
	h, err := openHandle(canonical, false)
	if err != nil {
		return wrapOSError("open", canonical, err)
	}
	defer h.Close()

	st, err := h.fstat()
	if err != nil {
		return wrapOSError("stat", canonical, err)
	}

	flags := st.Flags
	if hidden {
		flags |= unix.UF_HIDDEN
	} else {
		flags &^= unix.UF_HIDDEN
	}
	if flags == st.Flags {
		return nil
	}

	if err := unix.Fchflags(h.fd, int(flags)); err != nil {
		return wrapOSError("change flags", canonical, err)
	}
	return nil
}
