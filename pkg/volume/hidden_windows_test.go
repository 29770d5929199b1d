package volume

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/windows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func fileAttributes(t *testing.T, path string) uint32 {
	t.Helper()
	p, err := windows.UTF16PtrFromString(path)
	require.NoError(t, err)
	attrs, err := windows.GetFileAttributes(p)
	require.NoError(t, err)
	return attrs
}

func TestSetHiddenAttributeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "notes.txt"))

	got, err := GetHiddenAttribute(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, SetHiddenAttribute(context.Background(), path, true))

	got, err = GetHiddenAttribute(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, got)
	assert.NotZero(t, fileAttributes(t, path)&windows.FILE_ATTRIBUTE_HIDDEN)

	require.NoError(t, SetHiddenAttribute(context.Background(), path, false))

	got, err = GetHiddenAttribute(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSetHiddenAttributePreservesOtherBits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "ro.txt"))

	p, err := windows.UTF16PtrFromString(path)
	require.NoError(t, err)
	attrs := fileAttributes(t, path)
	require.NoError(t, windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_READONLY))
	t.Cleanup(func() {
		_ = windows.SetFileAttributes(p, windows.FILE_ATTRIBUTE_NORMAL)
	})

	require.NoError(t, SetHiddenAttribute(context.Background(), path, true))

	after := fileAttributes(t, path)
	assert.NotZero(t, after&windows.FILE_ATTRIBUTE_HIDDEN)
	assert.NotZero(t, after&windows.FILE_ATTRIBUTE_READONLY,
		"toggling hidden must not clear unrelated attribute bits")
}

func TestSetHiddenAttributeSurvivesRename(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "pinned.txt"))

	// The mutation goes through a handle opened from the validated path,
	// so the written attributes land on that object even if the name is
	// reused afterwards.
	require.NoError(t, SetHiddenAttribute(context.Background(), path, true))

	moved := filepath.Join(dir, "moved.txt")
	require.NoError(t, os.Rename(path, moved))

	got, err := GetHiddenAttribute(context.Background(), moved)
	require.NoError(t, err)
	assert.True(t, got)
}
