//go:build windows

package volume

import (
	"os"
	"strings"
)

// isSystemMount reports whether a mount is the Windows system drive.
// Compared against the SystemDrive environment variable (usually "C:"),
// which is cheap and does not touch the volume itself.
func isSystemMount(c MountCandidate) bool {
	systemDrive := os.Getenv("SystemDrive")
	if systemDrive == "" {
		systemDrive = "C:"
	}
	root := strings.TrimSuffix(c.MountPoint, `\`)
	return strings.EqualFold(root, systemDrive)
}
