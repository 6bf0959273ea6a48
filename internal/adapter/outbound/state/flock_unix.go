//go:build !windows

package state

import "syscall"

// flockLock acquires an exclusive lock on the snapshot lock file (Unix flock).
func flockLock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX)
}

// flockUnlock releases the snapshot lock file (Unix flock).
func flockUnlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
