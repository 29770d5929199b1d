//go:build darwin

package volume

import "strings"

// systemMountPrefixes covers the OS-owned mounts macOS synthesizes: the
// sealed system volume group, the VM swap volume, and devfs.
var systemMountPrefixes = []string{
	"/System/Volumes/VM",
	"/System/Volumes/Preboot",
	"/System/Volumes/Update",
	"/System/Volumes/xarts",
	"/System/Volumes/iSCPreboot",
	"/System/Volumes/Hardware",
	"/private/var/vm",
	"/dev",
}

// isSystemMount reports whether a mount belongs to the operating system
// rather than user data. The root volume itself is reported as a system
// volume; /System/Volumes/Data (the writable half of the volume group) is
// not.
func isSystemMount(c MountCandidate) bool {
	if c.FSType == "devfs" || c.FSType == "autofs" {
		return true
	}
	if c.MountPoint == "/" {
		return true
	}
	for _, prefix := range systemMountPrefixes {
		if c.MountPoint == prefix || strings.HasPrefix(c.MountPoint, prefix+"/") {
			return true
		}
	}
	return false
}
