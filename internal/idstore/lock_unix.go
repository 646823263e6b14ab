//go:build unix

package idstore

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Lock takes an exclusive advisory lock scoped to the id file at path.
// It blocks until the lock is free. The returned func releases it.
func Lock(path string) (func() error, error) {
	lockPath, err := prepareLockPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, FileMode)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}

	return func() error {
		unlockErr := unix.Flock(int(f.Fd()), unix.LOCK_UN)
		if err := f.Close(); err != nil && unlockErr == nil {
			unlockErr = err
		}
		return unlockErr
	}, nil
}
