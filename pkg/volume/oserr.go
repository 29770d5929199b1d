package volume

import (
	"errors"
	"fmt"
	"io/fs"
)

// wrapOSError classifies an OS failure into the package error taxonomy,
// keeping the failing operation name and the raw OS error in the message.
// Callers never see a bare "operation failed".
func wrapOSError(op, path string, err error) error {
	var class error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		class = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		class = ErrPermissionDenied
	default:
		class = ErrUnknown
	}
	return fmt.Errorf("%s %q: %v: %w", op, path, err, class)
}
