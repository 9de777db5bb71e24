package daemonctl_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"queuectl/internal/daemonctl"
)

func TestPIDFileRoundTrip(t *testing.T) {
	path := daemonctl.PIDFilePath(t.TempDir())

	if _, err := daemonctl.ReadPIDFile(path); !errors.Is(err, daemonctl.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning before write, got %v", err)
	}

	if err := daemonctl.WritePIDFile(path, 12345); err != nil {
		t.Fatalf("WritePIDFile failed: %v", err)
	}
	pid, err := daemonctl.ReadPIDFile(path)
	if err != nil {
		t.Fatalf("ReadPIDFile failed: %v", err)
	}
	if pid != 12345 {
		t.Fatalf("expected pid 12345, got %d", pid)
	}

	if err := daemonctl.RemovePIDFile(path); err != nil {
		t.Fatalf("RemovePIDFile failed: %v", err)
	}
	if _, err := daemonctl.ReadPIDFile(path); !errors.Is(err, daemonctl.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning after remove, got %v", err)
	}
	if err := daemonctl.RemovePIDFile(path); err != nil {
		t.Fatalf("expected second remove to be tolerated, got %v", err)
	}
}

func TestReadPIDFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queuectl.pid")
	if err := os.WriteFile(path, []byte("not-a-pid"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := daemonctl.ReadPIDFile(path); !errors.Is(err, daemonctl.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning for garbage pid file, got %v", err)
	}
}

func TestAlive(t *testing.T) {
	if !daemonctl.Alive(os.Getpid()) {
		t.Fatal("expected own process to be alive")
	}
	if daemonctl.Alive(0) {
		t.Fatal("expected pid 0 to be rejected")
	}
	if daemonctl.Alive(-1) {
		t.Fatal("expected negative pid to be rejected")
	}
	// Beyond the kernel's pid ceiling, so it cannot name a live process.
	if daemonctl.Alive(1 << 30) {
		t.Fatal("expected out-of-range pid to be reported dead")
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	path := daemonctl.LockFilePath(t.TempDir())

	lock, err := daemonctl.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	if _, err := daemonctl.AcquireLock(path); err == nil {
		t.Fatal("expected second AcquireLock to fail while lock is held")
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	relock, err := daemonctl.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock after release failed: %v", err)
	}
	if err := relock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}

func TestStopRejectsInvalidPID(t *testing.T) {
	if err := daemonctl.Stop(0); !errors.Is(err, daemonctl.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}
