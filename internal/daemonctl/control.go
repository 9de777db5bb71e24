// Package daemonctl owns the control-file plumbing that lets a separate
// process signal a running worker pool: the pid file, the single-instance
// lock, and signal delivery.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

const (
	pidFileName  = "queuectl.pid"
	lockFileName = "queuectl.lock"
)

// ErrNotRunning indicates no worker pool pid file exists.
var ErrNotRunning = errors.New("no worker pool is running")

// PIDFilePath returns the pid file location under the data directory.
func PIDFilePath(dataDir string) string {
	return filepath.Join(dataDir, pidFileName)
}

// LockFilePath returns the instance lock location under the data directory.
func LockFilePath(dataDir string) string {
	return filepath.Join(dataDir, lockFileName)
}

// AcquireLock takes the single-instance lock. It fails when another worker
// pool already holds it.
func AcquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another worker pool instance is already running")
	}
	return lock, nil
}

// WritePIDFile records the current process pid for out-of-process control.
func WritePIDFile(path string, pid int) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("write pid file %q: %w", path, err)
	}
	return nil
}

// ReadPIDFile returns the recorded pid, or ErrNotRunning when the file is
// absent or unreadable.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("read pid file %q: %w", path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, ErrNotRunning
	}
	return pid, nil
}

// RemovePIDFile deletes the pid file, tolerating its absence.
func RemovePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid file %q: %w", path, err)
	}
	return nil
}

// Alive probes whether a process with the given pid exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// Stop delivers SIGTERM, requesting cooperative shutdown of the worker pool.
func Stop(pid int) error {
	if pid <= 0 {
		return ErrNotRunning
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return fmt.Errorf("signal process %d: %w", pid, err)
	}
	return nil
}
