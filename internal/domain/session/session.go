package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/inkpress/inkctl/internal/domain/navigation"
	"github.com/inkpress/inkctl/internal/domain/validation"
)

// Store is the single source of truth for "who is logged in".
//
// It moves between three states: Uninitialized (process start),
// Unauthenticated, and Authenticated. InitializeAuth performs the
// one-time Uninitialized transition; Login and Logout move between the
// other two. ForceClear is the third mutator, reserved for the REST
// client's unauthorized-response handling.
//
// The persisted snapshot is a derived mirror of the in-memory state,
// written after every mutation, so a restart never observes a state
// older than the last completed mutation.
type Store struct {
	mu sync.Mutex

	user            *User
	token           string
	refreshToken    string
	isAuthenticated bool
	isInitialized   bool

	persist SnapshotStore
	api     AuthAPI
	nav     navigation.Navigator
	logger  *slog.Logger
}

// StoreOption is a functional option for configuring a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a session store hydrated from the persisted snapshot.
// Hydration restores the persisted fields only; the initialization latch
// always starts false. A missing or unreadable snapshot hydrates as
// unauthenticated.
func NewStore(persist SnapshotStore, api AuthAPI, nav navigation.Navigator, opts ...StoreOption) *Store {
	s := &Store{
		persist: persist,
		api:     api,
		nav:     nav,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := persist.Load()
	if err != nil {
		s.logger.Warn("session snapshot unreadable, starting unauthenticated", "error", err)
		return s
	}
	s.user = snap.User
	s.token = snap.Token
	s.refreshToken = snap.RefreshToken
	s.isAuthenticated = snap.IsAuthenticated
	return s
}

// InitializeAuth settles the hydrated state into Authenticated or
// Unauthenticated. It is idempotent: after the first call it returns
// immediately, so any number of consumers may invoke it. It never fails;
// absent credentials are a valid terminal state.
func (s *Store) InitializeAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized {
		return
	}

	if s.token != "" && s.user != nil {
		s.isAuthenticated = true
		s.logger.Debug("session restored", "user", s.user.Email)
	} else {
		s.user = nil
		s.token = ""
		s.refreshToken = ""
		s.isAuthenticated = false
		s.logger.Debug("no persisted session, starting unauthenticated")
	}
	s.isInitialized = true
}

// Login authenticates against the backend and, on success, atomically
// installs the new identity. Every failure path (validation, transport,
// missing token or user, non-superadmin role) leaves session state
// exactly as it was before the call.
//
// Calling Login while already authenticated is permitted and simply
// overwrites the session identity.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validation.Check(validation.LoginInput{Email: email, Password: password}); err != nil {
		return err
	}

	// The network call runs outside the lock; only the mutation is
	// serialized against other readers and writers.
	resp, err := s.api.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	if resp.Token == "" {
		return &AuthenticationError{Reason: "no token received from server"}
	}
	if resp.User == nil {
		return &AuthenticationError{Reason: "no user data received from server"}
	}
	if resp.User.Role != RoleSuperAdmin {
		return &AuthenticationError{Reason: "access denied, super admin access only"}
	}

	s.mu.Lock()
	s.user = resp.User
	s.token = resp.Token
	s.refreshToken = resp.RefreshToken
	s.isAuthenticated = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist.Save(snap); err != nil {
		// The in-memory session is valid; a stale disk copy only means
		// the next process starts unauthenticated.
		s.logger.Warn("failed to persist session snapshot", "error", err)
	}

	s.logger.Info("login succeeded", "user", resp.User.Email)
	return nil
}

// Logout releases the session. The backend notification is best-effort:
// its failure is logged and swallowed, and the cleared state plus the
// navigation side effect always happen. Logout cannot fail.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.mu.Unlock()

	if hadToken {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Warn("logout notification failed", "error", err)
		}
	}

	s.clear()
	if err := s.persist.Save(Snapshot{}); err != nil {
		s.logger.Warn("failed to persist cleared snapshot", "error", err)
	}

	navigation.Invoke(s.nav)
}

// ForceClear drops the session without notifying the backend. It is
// invoked by the REST client when a request fails with an unauthorized
// status: the credential is already known-invalid, so only the local
// state needs to go. Navigation is deferred by the caller.
func (s *Store) ForceClear() {
	s.clear()
	if err := s.persist.Clear(); err != nil {
		s.logger.Warn("failed to clear session snapshot", "error", err)
	}
	s.logger.Info("session force-cleared after unauthorized response")
}

// Token returns the current bearer token, or "" when unauthenticated.
// Together with Clear it makes the store usable as a live credential
// source for the REST client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear implements the credential-source clearing contract by delegating
// to ForceClear.
func (s *Store) Clear() error {
	s.ForceClear()
	return nil
}

// Snapshot returns a copy of the persisted subset of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether a login has completed and not been cleared.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// IsInitialized reports whether InitializeAuth has run.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isInitialized
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.refreshToken = ""
	s.isAuthenticated = false
	s.mu.Unlock()
}

// snapshotLocked builds a Snapshot; callers must hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	var u *User
	if s.user != nil {
		cp := *s.user
		u = &cp
	}
	return Snapshot{
		User:            u,
		Token:           s.token,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.isAuthenticated,
	}
}
