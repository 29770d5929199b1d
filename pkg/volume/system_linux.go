//go:build linux

package volume

import "strings"

// virtualFileSystems lists fstypes that exist only to expose kernel state.
// Mounts of these types are system volumes regardless of where they sit.
var virtualFileSystems = map[string]bool{
	"proc":        true,
	"sysfs":       true,
	"devtmpfs":    true,
	"devpts":      true,
	"securityfs":  true,
	"cgroup":      true,
	"cgroup2":     true,
	"pstore":      true,
	"bpf":         true,
	"tracefs":     true,
	"debugfs":     true,
	"configfs":    true,
	"fusectl":     true,
	"mqueue":      true,
	"hugetlbfs":   true,
	"binfmt_misc": true,
	"autofs":      true,
	"rpc_pipefs":  true,
	"squashfs":    true, // snap images
	"ramfs":       true,
	"efivarfs":    true,
}

// systemMountPrefixes covers tmpfs and friends mounted at OS-owned paths.
var systemMountPrefixes = []string{
	"/proc",
	"/sys",
	"/dev",
	"/run",
	"/boot",
	"/snap",
	"/var/lib/docker",
	"/var/lib/kubelet",
}

// isSystemMount reports whether a mount belongs to the operating system
// rather than user data.
func isSystemMount(c MountCandidate) bool {
	if virtualFileSystems[c.FSType] {
		return true
	}
	for _, prefix := range systemMountPrefixes {
		if c.MountPoint == prefix || strings.HasPrefix(c.MountPoint, prefix+"/") {
			return true
		}
	}
	return false
}
