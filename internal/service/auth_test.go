package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkpress/inkctl/internal/adapter/outbound/rest"
	"github.com/inkpress/inkctl/internal/domain/session"
)

func testClient(srv *httptest.Server) *rest.Client {
	return rest.NewClient(srv.URL, rest.WithHTTPClient(srv.Client()))
}

// TestAuthService_Login verifies the credential payload goes to the
// login endpoint and the identity and token pair come back decoded.
func TestAuthService_Login(t *testing.T) {
	var gotPath string
	var gotBody session.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"user": {"_id": "68a1", "name": "Admin", "email": "admin@example.com", "role": "superadmin"},
				"token": "tok-123",
				"refreshToken": "refresh-456"
			}
		}`))
	}))
	defer srv.Close()

	svc := NewAuthService(testClient(srv))
	resp, err := svc.Login(context.Background(), session.LoginRequest{
		Email:    "admin@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if gotPath != "/admin/auth/login" {
		t.Errorf("path = %q, want /admin/auth/login", gotPath)
	}
	if gotBody.Email != "admin@example.com" || gotBody.Password != "secret1" {
		t.Errorf("request body = %+v", gotBody)
	}
	if resp.Token != "tok-123" || resp.RefreshToken != "refresh-456" {
		t.Errorf("tokens = %q/%q", resp.Token, resp.RefreshToken)
	}
	if resp.User == nil || resp.User.Role != session.RoleSuperAdmin {
		t.Errorf("user = %+v, want superadmin", resp.User)
	}
}

// TestAuthService_Logout verifies the logout endpoints are hit with
// POST and their response bodies are ignored.
func TestAuthService_Logout(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Logged out"}`))
	}))
	defer srv.Close()

	svc := NewAuthService(testClient(srv))
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if err := svc.LogoutAll(context.Background()); err != nil {
		t.Fatalf("LogoutAll() failed: %v", err)
	}

	want := []string{"POST /admin/auth/logout", "POST /admin/auth/logout-all"}
	for i, w := range want {
		if paths[i] != w {
			t.Errorf("call %d = %q, want %q", i, paths[i], w)
		}
	}
}

// TestAuthService_Profile verifies the nested user payload is
// unwrapped.
func TestAuthService_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"data": {"user": {"_id": "68a1", "email": "admin@example.com", "role": "superadmin"}}
		}`))
	}))
	defer srv.Close()

	svc := NewAuthService(testClient(srv))
	user, err := svc.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", user.Email)
	}
}
