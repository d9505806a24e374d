package authz

import (
	"testing"

	"github.com/google/uuid"

	"uilibs/internal/models"
)

func TestCanModerate(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"nil user", nil, false},
		{"regular user", &models.User{Role: models.RoleUser}, false},
		{"admin", &models.User{Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModerate(tt.user); got != tt.want {
				t.Errorf("CanModerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewSubmission(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleUser}
	other := &models.User{ID: uuid.New(), Role: models.RoleUser}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	sub := &models.Submission{ID: uuid.New(), UserID: owner.ID, Status: models.StatusPending}

	tests := []struct {
		name string
		user *models.User
		sub  *models.Submission
		want bool
	}{
		{"nil user", nil, sub, false},
		{"nil submission", owner, nil, false},
		{"owner", owner, sub, true},
		{"other user", other, sub, false},
		{"admin", admin, sub, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewSubmission(tt.user, tt.sub); got != tt.want {
				t.Errorf("CanViewSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteSubmission(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleUser}
	other := &models.User{ID: uuid.New(), Role: models.RoleUser}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	pending := &models.Submission{ID: uuid.New(), UserID: owner.ID, Status: models.StatusPending}
	approved := &models.Submission{ID: uuid.New(), UserID: owner.ID, Status: models.StatusApproved}

	tests := []struct {
		name string
		user *models.User
		sub  *models.Submission
		want bool
	}{
		{"owner deletes pending", owner, pending, true},
		{"owner deletes reviewed", owner, approved, false},
		{"other user", other, pending, false},
		{"admin deletes reviewed", admin, approved, true},
		{"nil user", nil, pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDeleteSubmission(tt.user, tt.sub); got != tt.want {
				t.Errorf("CanDeleteSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManageLibrary(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}

	if !CanManageLibrary(admin) {
		t.Error("CanManageLibrary(admin) = false, want true")
	}
	if CanManageLibrary(user) {
		t.Error("CanManageLibrary(regular user) = true, want false")
	}
	if CanManageLibrary(nil) {
		t.Error("CanManageLibrary(nil) = true, want false")
	}
}
