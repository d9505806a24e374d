package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"uilibs/internal/models"
)

func TestUpsertUser_InsertAndUpdate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{
		Sub:   "upsert-sub",
		Email: "before@example.com",
		Name:  "Before",
	}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
	if user.Role != models.RoleUser {
		t.Errorf("UpsertUser() role = %q, want default %q", user.Role, models.RoleUser)
	}

	firstID := user.ID

	// Same sub: profile fields refresh, identity and role are stable.
	again := &models.User{
		Sub:   "upsert-sub",
		Email: "after@example.com",
		Name:  "After",
	}
	if err := db.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser() second error = %v", err)
	}
	if again.ID != firstID {
		t.Error("UpsertUser() changed the user ID on conflict")
	}

	got, err := db.GetUserBySub(ctx, "upsert-sub")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if got.Email != "after@example.com" || got.Name != "After" {
		t.Errorf("profile not refreshed: %+v", got)
	}
}

func TestUpsertUser_PreservesPromotedRole(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{Sub: "role-sub", Email: "role@example.com", Name: "Role"}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}

	if err := db.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}

	// Next login must not demote the admin.
	relogin := &models.User{Sub: "role-sub", Email: "role@example.com", Name: "Role"}
	if err := db.UpsertUser(ctx, relogin); err != nil {
		t.Fatalf("UpsertUser() relogin error = %v", err)
	}
	if relogin.Role != models.RoleAdmin {
		t.Errorf("role after relogin = %q, want %q", relogin.Role, models.RoleAdmin)
	}
}

func TestGetUserBySub_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetUserBySub(context.Background(), "no-such-sub")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserBySub() error = %v, want ErrUserNotFound", err)
	}
}

func TestGetAdminEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	admin := createUser(t, db, "emails-admin")
	if err := db.UpdateUserRole(ctx, admin.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}
	createUser(t, db, "emails-regular")

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails() error = %v", err)
	}
	if len(emails) != 1 || emails[0] != admin.Email {
		t.Errorf("GetAdminEmails() = %v, want only %q", emails, admin.Email)
	}
}
