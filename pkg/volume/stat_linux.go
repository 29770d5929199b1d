//go:build linux

package volume

import "golang.org/x/sys/unix"

// Filesystem magic numbers from linux/magic.h, used to name the filesystem
// when the mount table has no entry for the path. The mount-table fstype,
// when available, is preferred (it distinguishes nfs4 from nfs, names fuse
// subtypes, and so on).
var fsMagicNames = map[int64]string{
	0xef53:     "ext4",
	0x58465342: "xfs",
	0x9123683e: "btrfs",
	0x2fc12fc1: "zfs",
	0xf2f52010: "f2fs",
	0x3434:     "nilfs",
	0x4d44:     "vfat",
	0x2011bab0: "exfat",
	0x5346544e: "ntfs",
	0x73717368: "squashfs",
	0x01021994: "tmpfs",
	0x958458f6: "hugetlbfs",
	0x62656572: "sysfs",
	0x9fa0:     "proc",
	0x1cd1:     "devpts",
	0x62656570: "configfs",
	0x794c7630: "overlay",
	0x6969:     "nfs",
	0xff534d42: "cifs",
	0xfe534d42: "smb2",
	0x517b:     "smb",
	0x65735546: "fuse",
	0x65735543: "fusectl",
	0x9660:     "iso9660",
	0x15013346: "udf",
	0x00c36400: "ceph",
	0x47504653: "gpfs",
	0x013111a8: "ibrix",
	0x6b414653: "afs",
	0x5346414f: "afs",
	0x1373:     "devfs",
	0x858458f6: "ramfs",
	0x73636673: "securityfs",
	0x27e0eb:   "cgroup",
	0x63677270: "cgroup2",
}

// statHandle reads capacity and the basic filesystem type through the held
// descriptor. statvfs prefers f_frsize (fragment size) as the block unit;
// f_bsize is a fallback when the filesystem reports zero.
func statHandle(h *Handle) (volumeStat, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(h.fd, &st); err != nil {
		return volumeStat{}, wrapOSError("fstatfs", h.path, err)
	}

	blockSize := uint64(st.Frsize)
	if blockSize == 0 {
		blockSize = uint64(st.Bsize)
	}

	fsType := fsMagicNames[st.Type]

	return volumeStat{
		blockSize:   blockSize,
		totalBlocks: st.Blocks,
		freeBlocks:  st.Bfree,
		availBlocks: st.Bavail,
		fsType:      fsType,
	}, nil
}
