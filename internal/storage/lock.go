//go:build !windows

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"javadox/internal/errors"
)

// LockFile is created next to the index while a writer holds it.
const LockFile = "index.lock"

// Lock is an exclusive writer lock on an index directory.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes the writer lock in dir without blocking. It fails
// with INDEX_LOCKED when another process holds it.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	path := filepath.Join(dir, LockFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		msg := "index is locked by another process"
		if content, readErr := os.ReadFile(path); readErr == nil && len(content) > 0 {
			msg += " (PID " + strings.TrimSpace(string(content)) + ")"
		}
		return nil, errors.New(errors.IndexLocked, msg, err)
	}

	unlock := func(err error) (*Lock, error) {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		_ = file.Close()
		return nil, err
	}
	if err := file.Truncate(0); err != nil {
		return unlock(fmt.Errorf("truncating lock file: %w", err))
	}
	if _, err := file.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		return unlock(fmt.Errorf("writing PID to lock file: %w", err))
	}

	return &Lock{path: path, file: file}, nil
}

// Release drops the lock and removes the lock file. It is safe on nil.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	_ = l.file.Close()
	_ = os.Remove(l.path)
	l.file = nil
}
