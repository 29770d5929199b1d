package volume

import "context"

// GetHiddenAttribute reports whether the file or directory at path is
// hidden by the platform's own convention: the hidden flag on darwin and
// windows, a leading dot in the name elsewhere.
//
// Parameters:
//   - ctx: reserved for cancellation symmetry with the other operations;
//     the query itself is a single local call
//   - path: file or directory to inspect
//
// Returns the hidden state, or an error wrapping ErrInvalidPath,
// ErrNotFound, or ErrPermissionDenied.
//
// Thread safety: safe for concurrent use.
func GetHiddenAttribute(ctx context.Context, path string) (bool, error) {
	canonical, err := ValidatePath(path, false)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return getHiddenAttribute(canonical)
}

// SetHiddenAttribute hides or reveals the file or directory at path using
// the platform's own convention. On platforms where hiding means a leading
// dot, the file is renamed; the new name is returned by the platform in
// logs only and the caller's path stays valid until the rename.
//
// Parameters:
//   - ctx: reserved for cancellation symmetry with the other operations
//   - path: file or directory to change
//   - hidden: desired state; setting the current state again is a no-op
//
// Returns an error wrapping ErrInvalidPath, ErrNotFound, or
// ErrPermissionDenied.
//
// Thread safety: safe for concurrent use against distinct paths. Two
// concurrent renames of the same path race by nature; the second one
// reports ErrNotFound.
func SetHiddenAttribute(ctx context.Context, path string, hidden bool) error {
	canonical, err := ValidatePath(path, false)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return setHiddenAttribute(canonical, hidden)
}
