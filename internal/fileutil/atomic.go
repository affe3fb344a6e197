// Package fileutil holds small filesystem helpers shared by the persisted
// artifacts: the catalog, checkpoints, the asset index and downloaded assets.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile atomically replaces path with data.
//
// The content is written to a temporary file in the same directory, synced,
// then renamed over path. A crash at any point leaves either the old or the new
// content, never a partial file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteFrom(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteFrom is like WriteFile but streams the content from fn.
//
// If fn returns an error the temporary file is removed and path is untouched.
func WriteFrom(path string, perm os.FileMode, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	if err := fn(f); err != nil {
		return errors.Join(err, f.Close(), os.Remove(tmp))
	}
	if err := f.Sync(); err != nil {
		return errors.Join(fmt.Errorf("failed to sync temp file: %w", err), f.Close(), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close temp file: %w", err), os.Remove(tmp))
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return errors.Join(fmt.Errorf("failed to chmod temp file: %w", err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("failed to rename to final location: %w", err), os.Remove(tmp))
	}
	return nil
}

// SizeAtLeast reports whether path is a regular file of at least minSize bytes.
func SizeAtLeast(path string, minSize int64) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return fi.Size() >= minSize
}
