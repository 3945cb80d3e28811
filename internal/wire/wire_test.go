package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/data/repository"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/queue"
	"fleet-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type roleSessions map[string]entity.UserRole

func (s roleSessions) Create(context.Context, *entity.Session) error { return nil }
func (s roleSessions) Revoke(context.Context, string) error { return nil }
func (s roleSessions) RevokeAllUserSessions(context.Context, uuid.UUID) error { return nil }
func (s roleSessions) CleanExpiredSessions(context.Context) (int64, error) { return 0, nil }

func (s roleSessions) FindValidSession(_ context.Context, token string) (*entity.SessionUser, error) {
	role, ok := s[token]
	if !ok {
		return nil, nil
	}
	return &entity.SessionUser{Session: entity.Session{UserID: uuid.New()}, Role: role, IsActive: true}, nil
}

func TestRoutes_Access(t *testing.T) {
	staff := uuid.New().String()
	manager := uuid.New().String()
	repo := &repository.Repository{
		Session: roleSessions{staff: entity.RoleStaff, manager: entity.RoleManager},
	}
	config := &utils.Config{App: utils.AppConfig{AllowedOrigins: []string{"*"}}}
	app := Wiring(repo, config, cache.Noop{}, queue.Noop{}, zap.NewNop())

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"Health is public", http.MethodGet, "/health", "", "", http.StatusOK},
		{"List needs a session", http.MethodGet, "/api/bus-configurations", "", "", http.StatusUnauthorized},
		{"Staff cannot create configurations", http.MethodPost, "/api/bus-configurations", staff, "{}", http.StatusForbidden},
		{"Staff cannot validate", http.MethodPost, "/api/bus-configurations/validate", staff, "{}", http.StatusForbidden},
		{"Staff cannot delete buses", http.MethodDelete, "/api/buses/" + uuid.NewString(), staff, "", http.StatusForbidden},
		{"Staff cannot list users", http.MethodGet, "/api/admin/users", staff, "", http.StatusForbidden},
		{"Manager cannot list users", http.MethodGet, "/api/admin/users", manager, "", http.StatusForbidden},
		{"Manager reaches validation", http.MethodPost, "/api/bus-configurations/validate", manager, "{}", http.StatusBadRequest},
		{"Staff uses the editor", http.MethodPost, "/api/editor/generate", staff, `{"rows":2,"columns":2,"arrangement_pattern":"1x1"}`, http.StatusOK},
		{"Editor needs a session", http.MethodPost, "/api/editor/generate", "", "{}", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}
