package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/dto/request"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

func seedUser(t *testing.T, f *fixture, email, password string, role entity.UserRole, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         "Test",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	f.users.items[user.ID] = user
	return user
}

func TestLogin(t *testing.T) {
	f := newFixture()
	config := &utils.Config{Auth: utils.AuthConfig{SessionExpiryHours: 2}}
	svc := NewAuthService(f.repo, config, zap.NewNop())

	seedUser(t, f, "ops@fleet.test", "correct-horse", entity.RoleManager, true)
	seedUser(t, f, "gone@fleet.test", "correct-horse", entity.RoleStaff, false)

	tests := []struct {
		name string
		req  request.LoginRequest
		want error
	}{
		{"Success", request.LoginRequest{Email: "ops@fleet.test", Password: "correct-horse"}, nil},
		{"Wrong password", request.LoginRequest{Email: "ops@fleet.test", Password: "battery-staple"}, ErrInvalidCredentials},
		{"Unknown email", request.LoginRequest{Email: "who@fleet.test", Password: "correct-horse"}, ErrInvalidCredentials},
		{"Inactive", request.LoginRequest{Email: "gone@fleet.test", Password: "correct-horse"}, ErrAccountInactive},
		{"Invalid email", request.LoginRequest{Email: "ops", Password: "correct-horse"}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(f.sessions.created)
			got, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Login() error = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				if len(f.sessions.created) != before {
					t.Error("failed login created a session")
				}
				return
			}
			if got.Token == "" || got.Role != entity.RoleManager {
				t.Errorf("auth = %+v", got)
			}
			if ttl := time.Until(got.ExpiresAt); ttl < time.Hour || ttl > 2*time.Hour {
				t.Errorf("session expires in %v, want about 2h", ttl)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(f.repo, &utils.Config{}, zap.NewNop())

	if err := svc.Logout(context.Background(), "nope"); !errors.Is(err, ErrValidation) {
		t.Errorf("Logout() error = %v, want ErrValidation", err)
	}

	token := utils.GenerateSessionToken().String()
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != token {
		t.Errorf("revoked = %v", f.sessions.revoked)
	}
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture()
	config := &utils.Config{Auth: utils.AuthConfig{AdminEmail: "root@fleet.test", AdminPassword: "bootstrap-pass"}}
	svc := NewAuthService(f.repo, config, zap.NewNop())

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdmin(context.Background()); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
	}
	if len(f.users.items) != 1 {
		t.Fatalf("users = %d, want exactly one admin", len(f.users.items))
	}
	for _, u := range f.users.items {
		if u.Role != entity.RoleAdmin || !u.IsActive || !utils.CheckPasswordHash("bootstrap-pass", u.PasswordHash) {
			t.Errorf("admin = %+v", u)
		}
	}

	empty := NewAuthService(newFixture().repo, &utils.Config{}, zap.NewNop())
	if err := empty.EnsureAdmin(context.Background()); err != nil {
		t.Errorf("EnsureAdmin() without credentials error = %v", err)
	}
}

func TestCleanSessions(t *testing.T) {
	f := newFixture()
	f.sessions.expired = 3
	svc := NewAuthService(f.repo, &utils.Config{}, zap.NewNop())

	n, err := svc.CleanSessions(context.Background())
	if err != nil || n != 3 {
		t.Errorf("CleanSessions() = %d, %v, want 3", n, err)
	}
}
