package rewrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoChanges is returned by Apply when the rewrite left the file as is.
var ErrNoChanges = errors.New("rewrite: no changes")

// Apply writes the rewritten text back to path. The content goes to a temp
// file in the same directory first and is renamed over the original, so a
// crash mid-write never leaves a half-written source file. The original file
// mode is preserved. With dryRun set nothing touches the disk.
func Apply(path string, res *Result, dryRun bool) error {
	if !res.Changed {
		return ErrNoChanges
	}
	if dryRun {
		return nil
	}

	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sift-*")
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(res.Render()); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	return nil
}
