// Package session owns the authenticated-user state for the admin API.
package session

import "time"

// Role is the user role reported by the backend.
type Role string

const (
	// RoleSuperAdmin is the only role permitted to hold a session.
	RoleSuperAdmin Role = "superadmin"
	// RoleAdmin is a backend role without dashboard access.
	RoleAdmin Role = "admin"
	// RoleMerchant is a backend role without dashboard access.
	RoleMerchant Role = "merchant"
	// RoleUser is a backend role without dashboard access.
	RoleUser Role = "user"
)

// User is the identity record returned by the authentication endpoint.
type User struct {
	// ID is the backend identifier for the account.
	ID string `json:"_id"`
	// Name is the display name.
	Name string `json:"name"`
	// Email is the login identifier.
	Email string `json:"email"`
	// Role gates login: only RoleSuperAdmin may authenticate.
	Role Role `json:"role"`
	// IsActive indicates whether the account is enabled.
	IsActive bool `json:"isActive"`
	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last account modification timestamp.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is the persisted subset of session state. It is written to
// durable storage after every mutation and read back on startup. The
// initialization latch is deliberately absent from it: that latch is
// per-process state and must not survive a restart.
type Snapshot struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	RefreshToken    string `json:"refresh_token"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// LoginRequest is the credential payload sent to the authentication endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the authentication endpoint's success payload.
// Any of the three fields may be absent on a misbehaving backend; the
// store treats a missing token or user as a failed login.
type LoginResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
