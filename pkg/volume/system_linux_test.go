package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSystemMount(t *testing.T) {
	tests := []struct {
		name string
		c    MountCandidate
		want bool
	}{
		{"proc", MountCandidate{MountPoint: "/proc", FSType: "proc"}, true},
		{"cgroup2", MountCandidate{MountPoint: "/sys/fs/cgroup", FSType: "cgroup2"}, true},
		{"boot partition", MountCandidate{MountPoint: "/boot", FSType: "vfat"}, true},
		{"snap image", MountCandidate{MountPoint: "/snap/core/123", FSType: "squashfs"}, true},
		{"docker overlay", MountCandidate{MountPoint: "/var/lib/docker/overlay2/abc", FSType: "overlay"}, true},
		{"run tmpfs", MountCandidate{MountPoint: "/run/user/1000", FSType: "tmpfs"}, true},
		{"root", MountCandidate{MountPoint: "/", FSType: "ext4"}, false},
		{"home", MountCandidate{MountPoint: "/home", FSType: "xfs"}, false},
		{"media", MountCandidate{MountPoint: "/media/usb", FSType: "vfat"}, false},
		{"bootlike name", MountCandidate{MountPoint: "/bootleg", FSType: "ext4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSystemMount(tt.c))
		})
	}
}
