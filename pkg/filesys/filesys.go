// Package filesys provides the small set of file system utilities Ember's
// store and sidecar need: directory creation, glob-based segment discovery,
// and whole-file read/write/existence checks.
package filesys

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrIsNotDir is returned when a path expected to be a directory is a file instead.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at dirPath with the given permissions.
//
// If force is false and something already exists at dirPath, or Stat fails
// for a reason other than the path not existing, it returns Stat's error
// (nil when the path exists) without creating or checking anything.
//
// If force is true, an existing directory is accepted and an existing file
// yields ErrIsNotDir.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && !os.IsNotExist(err) {
		return err
	}
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}
	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}
	return os.Chmod(dirPath, permission)
}

// ReadDir returns the paths matching the glob pattern dirName, e.g.
// "<dir>/segment-*.ember".
func ReadDir(dirName string) ([]string, error) {
	return filepath.Glob(dirName)
}

// WriteFile writes contents to filePath, creating or truncating it.
func WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// ReadFile reads the entire content of filePath.
func ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
