package service

import (
	"context"

	"github.com/inkpress/inkctl/internal/adapter/outbound/rest"
	"github.com/inkpress/inkctl/internal/domain/session"
)

// AuthService performs the network half of authentication. It satisfies
// session.AuthAPI; the session store owns the business rules (role
// gating, state mutation), this service owns the wire calls.
type AuthService struct {
	client *rest.Client
}

// NewAuthService creates an AuthService over the given client.
func NewAuthService(client *rest.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for an identity and token pair.
func (s *AuthService) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResponse, error) {
	var resp session.LoginResponse
	if err := s.client.Post(ctx, epAuthLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend that the current token is released. The
// token travels via the standard attachment mechanism; the response
// body is ignored.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, epAuthLogout, nil, nil)
}

// Profile fetches the identity record behind the current token.
func (s *AuthService) Profile(ctx context.Context) (*session.User, error) {
	var out struct {
		User *session.User `json:"user"`
	}
	if err := s.client.Get(ctx, epAuthProfile, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// LogoutAll revokes every token issued to the account, not only the
// current one.
func (s *AuthService) LogoutAll(ctx context.Context) error {
	return s.client.Post(ctx, epAuthLogoutAll, nil, nil)
}
