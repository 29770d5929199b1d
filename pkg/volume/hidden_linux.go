package volume

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/volmeta/volmeta/internal/logger"
)

// Hidden on linux is a naming convention, not an attribute.

func getHiddenAttribute(canonical string) (bool, error) {
	if _, err := os.Lstat(canonical); err != nil {
		return false, wrapOSError("stat", canonical, err)
	}
	return strings.HasPrefix(filepath.Base(canonical), "."), nil
}

func setHiddenAttribute(canonical string, hidden bool) error {
	dir := filepath.Dir(canonical)
	base := filepath.Base(canonical)
	isHidden := strings.HasPrefix(base, ".")

	if hidden == isHidden {
		return nil
	}

	var target string
	if hidden {
		target = filepath.Join(dir, "."+base)
	} else {
		target = filepath.Join(dir, strings.TrimPrefix(base, "."))
	}

	// The target does not exist yet; validate it through its parent.
	target, err := ValidatePath(target, true)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(target); err == nil {
		return wrapOSError("rename", target, os.ErrExist)
	}

	logger.Debug("renaming %q to %q", canonical, target)
	if err := os.Rename(canonical, target); err != nil {
		return wrapOSError("rename", canonical, err)
	}
	return nil
}
