package volume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	sourceName string
	gateKind   SourceKind
	fn         func(md *VolumeMetadata) error
	calls      int
}

func (s *fakeSource) name() string     { return s.sourceName }
func (s *fakeSource) kind() SourceKind { return s.gateKind }

func (s *fakeSource) enrich(_ *Handle, md *VolumeMetadata, _ string) error {
	s.calls++
	if s.fn == nil {
		return nil
	}
	return s.fn(md)
}

func TestEnrichAllSourcesSucceed(t *testing.T) {
	md := &VolumeMetadata{
		MountPoint:     "/",
		FileSystemType: "ext4",
		Status:         StatusReady,
	}
	labeler := &fakeSource{
		sourceName: "labeler",
		fn: func(md *VolumeMetadata) error {
			md.Label = "data"
			return nil
		},
	}
	gated := &fakeSource{sourceName: "gated", gateKind: SourceDeviceRegistry}

	enrichWithSources(context.Background(), nil, md, "", []enrichSource{labeler, gated})

	assert.Equal(t, StatusHealthy, md.Status)
	assert.Equal(t, "data", md.Label)
	assert.Equal(t, 1, labeler.calls)
	assert.Equal(t, 1, gated.calls)
}

func TestEnrichSourceFailureDowngrades(t *testing.T) {
	md := &VolumeMetadata{
		MountPoint:     "/",
		FileSystemType: "ext4",
		Status:         StatusReady,
	}
	flaky := &fakeSource{
		sourceName: "flaky",
		fn: func(*VolumeMetadata) error {
			return errors.New("registry offline")
		},
	}
	steady := &fakeSource{
		sourceName: "steady",
		fn: func(md *VolumeMetadata) error {
			md.UUID = "0000-0001"
			return nil
		},
	}

	enrichWithSources(context.Background(), nil, md, "", []enrichSource{flaky, steady})

	assert.Equal(t, StatusPartial, md.Status)
	assert.Contains(t, md.ErrorDetail, "flaky")
	assert.Contains(t, md.ErrorDetail, "registry offline")

	// A failing source never prevents the remaining sources from
	// contributing.
	assert.Equal(t, 1, steady.calls)
	assert.Equal(t, "0000-0001", md.UUID)
}

func TestEnrichRemoteShortCircuit(t *testing.T) {
	md := &VolumeMetadata{
		MountPoint:     "/",
		FileSystemType: "nfs",
		MountSource:    "fileserver:/export",
		Status:         StatusReady,
	}
	local := &fakeSource{sourceName: "local-only"}

	enrichWithSources(context.Background(), nil, md, "", []enrichSource{local})

	require.True(t, md.IsRemote)
	assert.Equal(t, "fileserver", md.RemoteHost)
	assert.Equal(t, "/export", md.RemoteShare)
	assert.Equal(t, "nfs://fileserver/export", md.URI)
	assert.Equal(t, StatusHealthy, md.Status)
	assert.Zero(t, local.calls, "local sources must not touch a remote mount")
}

func TestEnrichCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	md := &VolumeMetadata{
		MountPoint:     "/",
		FileSystemType: "ext4",
		Status:         StatusReady,
	}
	src := &fakeSource{sourceName: "never"}

	enrichWithSources(ctx, nil, md, "", []enrichSource{src})

	assert.Equal(t, StatusPartial, md.Status)
	assert.Zero(t, src.calls)
}

func TestRefinesFSType(t *testing.T) {
	tests := []struct {
		name    string
		current string
		table   string
		want    bool
	}{
		{"fills empty", "", "ext4", true},
		{"fills unknown", "unknown", "btrfs", true},
		{"narrows family", "fuse", "fuse.sshfs", true},
		{"keeps specific", "ext4", "overlay", false},
		{"keeps equal", "xfs", "xfs", false},
		{"ignores empty table", "ext4", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refinesFSType(tt.current, tt.table))
		})
	}
}
