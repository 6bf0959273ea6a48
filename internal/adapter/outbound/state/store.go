// Package state provides file-based persistence for the session snapshot.
//
// A single JSON file holds the persisted subset of session state (user,
// token, refresh token, authenticated flag). This package provides
// atomic writes, file locking, and tolerant reads: a missing or
// malformed file always loads as "no session", never as an error.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/inkpress/inkctl/internal/domain/session"
)

// SnapshotStore manages reading and writing the session snapshot file.
// It provides atomic writes (write-tmp-then-rename) and file locking
// (flock for cross-process, mutex for in-process). The file carries the
// bearer token, so it is kept at 0600.
type SnapshotStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSnapshotStore creates a SnapshotStore for the given file path.
func NewSnapshotStore(path string, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		path:   path,
		logger: logger,
	}
}

// Load reads and parses the snapshot file.
// A missing file loads as the zero snapshot. So does a malformed one:
// a corrupt snapshot means "no session", not a fatal error, because the
// worst outcome must be re-authenticating.
// Warns if the existing file has permissions more open than 0600.
func (s *SnapshotStore) Load() (session.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Snapshot{}, nil
		}
		return session.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	// Skip the permission check on Windows where Unix mode bits are not supported.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 { // group or other has access
				s.logger.Warn("session file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("session file malformed, treating as no session",
			"path", s.path, "error", err)
		return session.Snapshot{}, nil
	}

	return snap, nil
}

// Save writes the snapshot to disk atomically.
//
// The write sequence is:
//  1. Acquire in-process mutex
//  2. Acquire flock on path+".lock"
//  3. Copy current file to path+".bak" (skipped if no current file)
//  4. Marshal snapshot as indented JSON
//  5. Write to path+".tmp" with 0600 permissions
//  6. Fsync the temp file
//  7. Rename path+".tmp" -> path
//  8. Release flock
//  9. Release mutex
func (s *SnapshotStore) Save(snap session.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.flock()
	if err != nil {
		return err
	}
	defer unlock()

	// Create backup of current file (ignore error if file doesn't exist).
	if currentData, readErr := os.ReadFile(s.path); readErr == nil {
		if writeErr := os.WriteFile(s.path+".bak", currentData, 0600); writeErr != nil {
			s.logger.Warn("failed to create backup", "error", writeErr)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Explicitly ensure 0600 permissions after rename as a safety net.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on session file", "error", err)
	}

	s.logger.Debug("session snapshot saved", "path", s.path)
	return nil
}

// Clear removes the snapshot file. A missing file is not an error.
func (s *SnapshotStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.flock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	s.logger.Debug("session snapshot cleared", "path", s.path)
	return nil
}

// Exists returns true if the snapshot file exists on disk.
func (s *SnapshotStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// flock acquires the cross-process lock and returns its release func.
func (s *SnapshotStore) flock() (func(), error) {
	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := flockLock(lockFile.Fd()); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("acquire file lock: %w", err)
	}
	return func() {
		_ = flockUnlock(lockFile.Fd())
		_ = lockFile.Close()
	}, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it
// over the target path. On any error the temp file is cleaned up.
func (s *SnapshotStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// cleanup closes and removes the temp file on error.
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to snapshot: %w", err)
	}
	return nil
}
