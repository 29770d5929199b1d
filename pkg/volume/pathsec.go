package volume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/volmeta/volmeta/internal/logger"
)

// ValidatePath canonicalizes and security-checks an untrusted path.
//
// Validation rejects empty paths and paths containing an embedded NUL byte,
// then canonicalizes through the OS path resolver (symlinks, ".", ".." all
// eliminated). Canonicalization is the only traversal defense: substring
// checks for ".." are unreliable (a symlink can smuggle traversal past any
// pattern match) and are deliberately not performed.
//
// When the leaf component does not exist and allowNonexistent is true, the
// parent directory is canonicalized instead and the original leaf name is
// re-appended: this is what write-target validation needs (the file is about
// to be created). If the parent cannot be resolved either, validation fails.
//
// Parameters:
//   - path: untrusted input path
//   - allowNonexistent: tolerate a missing leaf by validating the parent
//
// Returns:
//   - the canonical absolute path
//   - ErrInvalidPath for empty/NUL/unresolvable paths, ErrNotFound when the
//     path does not exist and allowNonexistent is false
//
// Side effects: none beyond the resolver syscalls; pure validation.
func ValidatePath(path string, allowNonexistent bool) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", fmt.Errorf("path contains NUL byte: %w", ErrInvalidPath)
	}

	// Absolutize without cleaning: lexically collapsing ".." before the
	// resolver runs would hop over a symlinked component ("/link/../x"
	// must resolve link first, as the kernel does).
	abs := path
	if !filepath.IsAbs(abs) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %v: %w", err, ErrInvalidPath)
		}
		abs = wd + string(os.PathSeparator) + abs
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err == nil {
		logger.Debug("validated path %q -> %q", path, canonical)
		return canonical, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("resolve %q: %v: %w", path, err, ErrInvalidPath)
	}

	if !allowNonexistent {
		return "", fmt.Errorf("resolve %q: %w", path, ErrNotFound)
	}

	// Leaf does not exist: validate the parent and re-append the leaf.
	// The split is positional, not Clean-based, for the same reason as
	// above.
	parent, leaf := splitLeaf(abs)

	canonicalParent, perr := filepath.EvalSymlinks(parent)
	if perr != nil {
		if errors.Is(perr, fs.ErrNotExist) {
			return "", fmt.Errorf("resolve parent %q: %w", parent, ErrNotFound)
		}
		return "", fmt.Errorf("resolve parent %q: %v: %w", parent, perr, ErrInvalidPath)
	}

	canonical = filepath.Join(canonicalParent, leaf)
	logger.Debug("validated nonexistent path %q -> %q", path, canonical)
	return canonical, nil
}

// splitLeaf splits an absolute path into parent and last component without
// cleaning either part.
func splitLeaf(abs string) (string, string) {
	trimmed := strings.TrimRight(abs, `/\`)
	i := strings.LastIndexAny(trimmed, `/\`)
	if i < 0 {
		return abs, ""
	}
	parent := trimmed[:i]
	if parent == "" {
		parent = string(os.PathSeparator)
	}
	return parent, trimmed[i+1:]
}
