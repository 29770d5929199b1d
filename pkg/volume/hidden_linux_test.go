package volume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestGetHiddenAttribute(t *testing.T) {
	dir := t.TempDir()
	visible := writeFile(t, filepath.Join(dir, "notes.txt"))
	hidden := writeFile(t, filepath.Join(dir, ".secrets"))

	got, err := GetHiddenAttribute(context.Background(), visible)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = GetHiddenAttribute(context.Background(), hidden)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestGetHiddenAttributeNotFound(t *testing.T) {
	_, err := GetHiddenAttribute(context.Background(), filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSetHiddenAttributeHides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "notes.txt"))

	require.NoError(t, SetHiddenAttribute(context.Background(), path, true))

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "original name should be gone after hiding")

	renamed := filepath.Join(dir, ".notes.txt")
	got, err := GetHiddenAttribute(context.Background(), renamed)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSetHiddenAttributeReveals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, ".cache"))

	require.NoError(t, SetHiddenAttribute(context.Background(), path, false))

	_, err := os.Lstat(filepath.Join(dir, "cache"))
	assert.NoError(t, err)
}

func TestSetHiddenAttributeNoop(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, ".already"))

	require.NoError(t, SetHiddenAttribute(context.Background(), path, true))

	// Setting the current state must not rename anything.
	_, err := os.Lstat(path)
	assert.NoError(t, err)
}

func TestSetHiddenAttributeTargetExists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "clash"))
	writeFile(t, filepath.Join(dir, ".clash"))

	err := SetHiddenAttribute(context.Background(), path, true)
	require.Error(t, err)

	// Neither file may be clobbered by the refused rename.
	_, err = os.Lstat(path)
	assert.NoError(t, err)
	_, err = os.Lstat(filepath.Join(dir, ".clash"))
	assert.NoError(t, err)
}
