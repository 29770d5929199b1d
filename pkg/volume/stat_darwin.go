//go:build darwin

package volume

import "golang.org/x/sys/unix"

// statHandle reads capacity, filesystem type, and mount source through the
// held descriptor. Darwin's statfs carries the fstype name and the mount
// source directly, and its MNT_LOCAL flag distinguishes local from remote
// mounts without consulting the filesystem type table.
func statHandle(h *Handle) (volumeStat, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(h.fd, &st); err != nil {
		return volumeStat{}, wrapOSError("fstatfs", h.path, err)
	}

	return volumeStat{
		blockSize:   uint64(st.Bsize),
		totalBlocks: st.Blocks,
		freeBlocks:  st.Bfree,
		availBlocks: st.Bavail,
		fsType:      unix.ByteSliceToString(st.Fstypename[:]),
		mountSource: unix.ByteSliceToString(st.Mntfromname[:]),
		remote:      st.Flags&unix.MNT_LOCAL == 0,
	}, nil
}
