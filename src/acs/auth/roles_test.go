package auth

import (
	"context"
	"testing"

	"github.com/bitswalk/acs/src/common/errors"
)

func TestRoleService_AssignTwice(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	svc := newTestService(database)
	roles := NewRoleService(database.Conn)

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatal(err)
	}
	user, _ := svc.GetByName(ctx, "alice")
	admin, err := roles.GetByName(ctx, "Admin")
	if err != nil || admin == nil {
		t.Fatalf("GetByName(Admin) = %+v, %v", admin, err)
	}

	ok, err := roles.AssignRole(ctx, user.ID, admin.ID)
	if err != nil || !ok {
		t.Fatalf("first AssignRole() = %v, %v", ok, err)
	}
	ok, err = roles.AssignRole(ctx, user.ID, admin.ID)
	if err != nil || ok {
		t.Fatalf("second AssignRole() = %v, %v, want false, nil", ok, err)
	}

	rows, err := roles.ByUser(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one association row, got %d", len(rows))
	}

	all, err := roles.Associations().GetAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("Associations().GetAll() = %v, %v", all, err)
	}
}

func TestRoleService_RolesForUserOrdered(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	svc := newTestService(database)
	roles := NewRoleService(database.Conn)

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatal(err)
	}
	user, _ := svc.GetByName(ctx, "alice")

	auditor := &Role{Name: "Auditor", Description: "Read-only reviewer"}
	if err := roles.Roles().Create(ctx, auditor); err != nil {
		t.Fatalf("Create(role) error = %v", err)
	}

	for _, id := range []int64{auditor.ID, 1} {
		if _, err := roles.AssignRole(ctx, user.ID, id); err != nil {
			t.Fatal(err)
		}
	}

	held, err := roles.RolesForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("RolesForUser() error = %v", err)
	}
	if len(held) != 2 || held[0].ID != 1 || held[1].ID != auditor.ID {
		t.Fatalf("RolesForUser() = %+v, want ordered by id", held)
	}
	if held[1].Description != "Read-only reviewer" {
		t.Errorf("description not loaded: %+v", held[1])
	}

	none, err := roles.RolesForUser(ctx, 999)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("RolesForUser(unknown) = %#v, %v", none, err)
	}
}

func TestRoleService_RemoveRole(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	svc := newTestService(database)
	roles := NewRoleService(database.Conn)

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatal(err)
	}
	user, _ := svc.GetByName(ctx, "alice")

	ok, err := roles.RemoveRole(ctx, user.ID, 1)
	if err != nil || ok {
		t.Fatalf("RemoveRole() of unheld role = %v, %v", ok, err)
	}

	if _, err := roles.AssignRole(ctx, user.ID, 1); err != nil {
		t.Fatal(err)
	}
	ok, err = roles.RemoveRole(ctx, user.ID, 1)
	if err != nil || !ok {
		t.Fatalf("RemoveRole() = %v, %v", ok, err)
	}

	byRole, err := roles.ByRole(ctx, 1)
	if err != nil || len(byRole) != 0 {
		t.Fatalf("ByRole() after removal = %+v, %v", byRole, err)
	}
}

func TestRoleService_AssignUnknown(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	svc := newTestService(database)
	roles := NewRoleService(database.Conn)

	_, err := roles.AssignRole(ctx, 77, 1)
	if !errors.Is(err, errors.ErrUserNotFound) {
		t.Fatalf("AssignRole(unknown user) error = %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatal(err)
	}
	user, _ := svc.GetByName(ctx, "alice")
	_, err = roles.AssignRole(ctx, user.ID, 77)
	if !errors.Is(err, errors.ErrRoleNotFound) {
		t.Fatalf("AssignRole(unknown role) error = %v", err)
	}
}

func TestRoleService_CRUD(t *testing.T) {
	ctx := context.Background()
	roles := NewRoleService(setupTestDB(t).Conn)

	all, err := roles.Roles().GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Name != "User" || all[1].Name != "Admin" {
		t.Fatalf("seeded roles = %+v", all)
	}

	ops := &Role{Name: "Ops"}
	if err := roles.Roles().Create(ctx, ops); err != nil {
		t.Fatal(err)
	}
	ops.Description = "Operators"
	if ok, err := roles.Roles().Update(ctx, ops); err != nil || !ok {
		t.Fatalf("Update() = %v, %v", ok, err)
	}
	got, _ := roles.Roles().GetByID(ctx, ops.ID)
	if got == nil || got.Description != "Operators" {
		t.Fatalf("GetByID() = %+v", got)
	}
	if ok, err := roles.Roles().Delete(ctx, ops.ID); err != nil || !ok {
		t.Fatalf("Delete() = %v, %v", ok, err)
	}
	missing, err := roles.GetByName(ctx, "Ops")
	if err != nil || missing != nil {
		t.Fatalf("GetByName after delete = %+v, %v", missing, err)
	}
}
