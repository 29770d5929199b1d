package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNetworkFileSystem(t *testing.T) {
	tests := []struct {
		fstype string
		want   bool
	}{
		{"nfs", true},
		{"nfs4", true},
		{"cifs", true},
		{"CIFS", true},
		{"smbfs", true},
		{"fuse.sshfs", true},
		{"ext4", false},
		{"apfs", false},
		{"ntfs", false},
		{"tmpfs", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.fstype, func(t *testing.T) {
			assert.Equal(t, tt.want, isNetworkFileSystem(tt.fstype))
		})
	}
}

func TestRemoteHostAndShare(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantHost  string
		wantShare string
	}{
		{
			name:      "nfs export",
			source:    "fileserver:/export/media",
			wantHost:  "fileserver",
			wantShare: "/export/media",
		},
		{
			name:      "smb unc",
			source:    "//nas/backups",
			wantHost:  "nas",
			wantShare: "backups",
		},
		{
			name:      "smb unc nested",
			source:    "//nas/backups/photos",
			wantHost:  "nas",
			wantShare: "backups/photos",
		},
		{
			name:      "url style",
			source:    "davs://cloud.example.com/remote.php/webdav",
			wantHost:  "cloud.example.com",
			wantShare: "remote.php/webdav",
		},
		{
			name:      "url style no path",
			source:    "smb://nas",
			wantHost:  "nas",
			wantShare: "",
		},
		{
			name:      "smb unc with user",
			source:    "//alice@nas/backups",
			wantHost:  "nas",
			wantShare: "backups",
		},
		{
			name:      "bare host unc",
			source:    "//nas",
			wantHost:  "nas",
			wantShare: "",
		},
		{
			name:      "local device",
			source:    "/dev/sda1",
			wantHost:  "",
			wantShare: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHost, remoteHost(tt.source))
			assert.Equal(t, tt.wantShare, remoteShare(tt.source))
		})
	}
}

func TestRemoteURI(t *testing.T) {
	tests := []struct {
		name   string
		fstype string
		source string
		want   string
	}{
		{"nfs", "nfs", "fileserver:/export", "nfs://fileserver/export"},
		{"nfs4 normalized", "nfs4", "fileserver:/export", "nfs://fileserver/export"},
		{"cifs", "cifs", "//nas/backups", "smb://nas/backups"},
		{"already uri", "davfs", "davs://host/share", "davs://host/share"},
		{"no host", "nfs", "/dev/sda1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remoteURI(tt.fstype, tt.source))
		})
	}
}
