package infra

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/evaleds/evalup/internal/domain"
)

// OSFileSystem implements domain.FileSystem on the real filesystem.
type OSFileSystem struct{}

// NewFileSystem creates a new filesystem adapter.
func NewFileSystem() domain.FileSystem {
	return &OSFileSystem{}
}

// Exists checks if a path exists. Permission errors read as absent:
// discovery is a best-effort scan, not an authoritative registry.
func (fs *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (fs *OSFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Remove deletes a single file.
func (fs *OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll deletes a file or directory recursively.
func (fs *OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// MkdirAll creates a directory and any missing parents.
func (fs *OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Glob returns paths matching the pattern.
func (fs *OSFileSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// Canonical resolves symlinks and returns the absolute path, falling
// back to the cleaned absolute path when resolution fails.
func (fs *OSFileSystem) Canonical(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return filepath.Clean(resolved)
	}
	return abs
}

// LookPath resolves an executable name via the shell search path.
func (fs *OSFileSystem) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// WriteFileIfAbsent writes data to path only when the file does not
// already exist. Creation is not an overwrite.
func (fs *OSFileSystem) WriteFileIfAbsent(path string, data []byte, perm uint32) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, os.FileMode(perm))
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return false, err
	}
	return true, nil
}

// Ensure OSFileSystem implements domain.FileSystem.
var _ domain.FileSystem = (*OSFileSystem)(nil)
