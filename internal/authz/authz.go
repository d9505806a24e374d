// Package authz centralizes the permission checks used by handlers so the
// rules live in one place instead of scattered across routes.
package authz

import (
	"uilibs/internal/models"
)

// CanModerate reports whether the user may review submissions and manage
// the published directory.
func CanModerate(user *models.User) bool {
	return user.IsAdmin()
}

// CanViewSubmission reports whether the user may see a submission: its
// submitter, or any admin.
func CanViewSubmission(user *models.User, sub *models.Submission) bool {
	if user == nil || sub == nil {
		return false
	}
	return user.IsAdmin() || sub.UserID == user.ID
}

// CanDeleteSubmission reports whether the user may withdraw a submission.
// Submitters may only withdraw their own still-pending entries; admins may
// remove any.
func CanDeleteSubmission(user *models.User, sub *models.Submission) bool {
	if user == nil || sub == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return sub.UserID == user.ID && sub.IsPending()
}

// CanManageLibrary reports whether the user may create, edit, or delete
// published libraries directly, bypassing moderation.
func CanManageLibrary(user *models.User) bool {
	return user.IsAdmin()
}

// CanManageUsers reports whether the user may change other users' roles.
func CanManageUsers(user *models.User) bool {
	return user.IsAdmin()
}
