//go:build windows

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"javadox/internal/errors"
)

// LockFile is created next to the index while a writer holds it.
const LockFile = "index.lock"

// Lock is a writer lock on an index directory. Windows has no flock, so
// the lock file is created exclusively and removed on release; a crashed
// writer leaves it behind.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes the writer lock in dir without blocking. It fails
// with INDEX_LOCKED when the lock file already exists.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	path := filepath.Join(dir, LockFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.New(errors.IndexLocked, "index is locked by another process (remove "+path+" if no javadox is running)", err)
		}
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing PID to lock file: %w", err)
	}
	return &Lock{path: path, file: file}, nil
}

// Release drops the lock and removes the lock file. It is safe on nil.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	_ = os.Remove(l.path)
	l.file = nil
}
