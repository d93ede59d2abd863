// Package sidecar manages ember.config, the file that records which
// engine a data directory was first opened with. A directory is
// committed to one engine for life: reopening it with a different
// --engine must fail before anything binds a listener or touches the
// data files.
package sidecar

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sagararora86/ember/pkg/filesys"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

const fileName = "ember.config"

// EngineMismatchError is returned by Check when dir was previously
// initialized with a different engine than requested.
type EngineMismatchError struct {
	Dir      string
	Existing string
	Wanted   string
}

func (e *EngineMismatchError) Error() string {
	return fmt.Sprintf("directory %q was initialized with engine %q, cannot reopen with %q", e.Dir, e.Existing, e.Wanted)
}

// Check ensures dir is locked to engineName: if ember.config already
// exists and names a different engine, it returns an *EngineMismatchError.
// Otherwise it writes (or confirms) the lock-in file.
func Check(dir, engineName string) error {
	path := filepath.Join(dir, fileName)

	exists, err := filesys.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return write(path, engineName)
	}

	existing, err := read(path)
	if err != nil {
		return err
	}
	if existing != engineName {
		return &EngineMismatchError{Dir: dir, Existing: existing, Wanted: engineName}
	}
	return nil
}

func read(path string) (string, error) {
	data, err := filesys.ReadFile(path)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		name, ok := strings.CutPrefix(line, "engine=")
		if ok {
			return strings.TrimSpace(name), nil
		}
	}
	return "", kvserrors.Protocol("malformed sidecar file").WithKey(path)
}

func write(path, engineName string) error {
	content := fmt.Sprintf("engine=%s\n", engineName)
	return filesys.WriteFile(path, 0644, []byte(content))
}
