package usecase

import (
	"context"
	"errors"
	"testing"

	"fleet-admin/internal/data/entity"
	"fleet-admin/internal/dto/request"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

func TestCreateUser(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.repo, zap.NewNop())
	ctx := context.Background()

	req := &request.CreateUserRequest{Name: "Dispatcher", Email: "Desk@Fleet.test", Password: "long-enough", Role: "staff"}
	got, err := svc.CreateUser(ctx, req)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if got.Email != "desk@fleet.test" || got.Role != entity.RoleStaff || !got.IsActive {
		t.Errorf("user = %+v", got)
	}

	if _, err := svc.CreateUser(ctx, req); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrConflict", err)
	}

	bad := &request.CreateUserRequest{Name: "X", Email: "x@fleet.test", Password: "long-enough", Role: "owner"}
	if _, err := svc.CreateUser(ctx, bad); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid CreateUser() error = %v, want ErrValidation", err)
	}
}

func TestDeactivateUser(t *testing.T) {
	f := newFixture()
	svc := NewUserService(f.repo, zap.NewNop())

	admin := seedUser(t, f, "admin@fleet.test", "long-enough", entity.RoleAdmin, true)
	staff := seedUser(t, f, "staff@fleet.test", "long-enough", entity.RoleStaff, true)
	ctx := utils.SetUserContext(context.Background(), admin.ID, string(admin.Role))

	if err := svc.DeactivateUser(ctx, admin.ID.String()); !errors.Is(err, ErrConflict) {
		t.Errorf("self deactivation error = %v, want ErrConflict", err)
	}

	if err := svc.DeactivateUser(ctx, staff.ID.String()); err != nil {
		t.Fatalf("DeactivateUser() error = %v", err)
	}
	if f.users.items[staff.ID].IsActive {
		t.Error("user is still active")
	}
	if len(f.sessions.revokedUsers) != 1 || f.sessions.revokedUsers[0] != staff.ID {
		t.Errorf("revoked sessions = %v", f.sessions.revokedUsers)
	}

	profile, err := svc.GetProfile(ctx, staff.ID.String())
	if err != nil || profile.IsActive {
		t.Errorf("GetProfile() = %+v, %v", profile, err)
	}

	page, err := svc.GetAllUsers(ctx, &request.PaginatedRequest{})
	if err != nil || page.Pagination.Total != 2 {
		t.Errorf("GetAllUsers() = %+v, %v", page, err)
	}
}
