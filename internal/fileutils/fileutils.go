// Package fileutils provides the file operations shared by the store and
// the report writer.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryPerm is used for directories created on behalf of output files.
const DirectoryPerm os.FileMode = 0750

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FirstExisting returns the first candidate that is an existing file.
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if FileExists(c) {
			return c, true
		}
	}
	return "", false
}

// EnsureDirectoryExists creates dirPath and its parents if needed.
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, DirectoryPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to filePath and
// renames it into place, so readers never observe a partial file. Parent
// directories are created as needed.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
