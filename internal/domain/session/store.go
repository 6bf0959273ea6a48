package session

import (
	"context"
	"errors"
	"fmt"
)

// SnapshotStore persists the session snapshot across restarts.
// This interface is defined in the domain to avoid circular imports.
// Implementations: file-backed JSON store (prod), in-memory (test).
type SnapshotStore interface {
	// Load reads the persisted snapshot. A missing or unreadable
	// snapshot is not an error: it loads as the zero Snapshot.
	Load() (Snapshot, error)

	// Save replaces the persisted snapshot.
	Save(Snapshot) error

	// Clear removes the persisted snapshot.
	Clear() error
}

// AuthAPI performs the network half of login and logout. Implemented by
// the auth service over the REST client; defined here so the store does
// not import the transport layer.
type AuthAPI interface {
	// Login exchanges credentials for an identity and token pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Logout notifies the backend that the current token is released.
	Logout(ctx context.Context) error
}

// ErrAuthentication is returned when login succeeded at the transport
// level but failed business rules (missing token or user, wrong role).
var ErrAuthentication = errors.New("authentication failed")

// AuthenticationError carries the reason a login was rejected.
// A rejected login never mutates session state.
type AuthenticationError struct {
	// Reason explains why the login was rejected.
	Reason string
}

// Error returns a human-readable description of the rejection.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrAuthentication).
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}
