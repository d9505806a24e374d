package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"uilibs/internal/models"
)

func newSubmission(name string, userID uuid.UUID) *models.Submission {
	website := "https://" + name + ".example.com"
	return &models.Submission{
		Name:        name,
		Description: "A submitted component library",
		About:       "Longer writeup",
		Author:      "Acme",
		AuthorBio:   "Makers of fine components",
		Website:     &website,
		Gallery:     []string{},
		Tags:        []string{"components", "forms"},
		IsPaid:      true,
		UserID:      userID,
	}
}

func TestCreateSubmission(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createUser(t, db, "submitter")

	sub := newSubmission("sub-ui", user.ID)
	if err := db.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission() error = %v", err)
	}

	if sub.ID == uuid.Nil {
		t.Error("CreateSubmission() did not set ID")
	}
	if sub.Status != models.StatusPending {
		t.Errorf("CreateSubmission() status = %q, want %q", sub.Status, models.StatusPending)
	}
	if sub.CreatedAt.IsZero() {
		t.Error("CreateSubmission() did not set CreatedAt")
	}
}

func TestApproveSubmission_CopiesFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	submitter := createUser(t, db, "approve-submitter")
	admin := createUser(t, db, "approve-admin")

	sub := newSubmission("approve-ui", submitter.ID)
	if err := db.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission() error = %v", err)
	}

	notes := "Looks great"
	lib, err := db.ApproveSubmission(ctx, sub.ID, admin.ID, &notes)
	if err != nil {
		t.Fatalf("ApproveSubmission() error = %v", err)
	}

	if lib.ID == uuid.Nil {
		t.Error("ApproveSubmission() did not set library ID")
	}
	if lib.Name != sub.Name || lib.Description != sub.Description || lib.About != sub.About {
		t.Error("ApproveSubmission() did not copy descriptive fields")
	}
	if lib.Author != sub.Author || lib.AuthorBio != sub.AuthorBio {
		t.Error("ApproveSubmission() did not copy author fields")
	}
	if lib.Website == nil || *lib.Website != *sub.Website {
		t.Error("ApproveSubmission() did not copy website")
	}
	if !lib.IsPaid {
		t.Error("ApproveSubmission() did not copy is_paid")
	}
	if len(lib.Tags) != len(sub.Tags) {
		t.Errorf("ApproveSubmission() tags = %v, want %v", lib.Tags, sub.Tags)
	}
	if lib.UserID != submitter.ID {
		t.Error("ApproveSubmission() library owner is not the submitter")
	}

	got, err := db.GetSubmissionByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetSubmissionByID() error = %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("submission status = %q, want %q", got.Status, models.StatusApproved)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != admin.ID {
		t.Error("submission reviewed_by not set to approver")
	}
	if got.ReviewedAt == nil {
		t.Error("submission reviewed_at not set")
	}
	if got.AdminNotes == nil || *got.AdminNotes != notes {
		t.Error("submission admin_notes not recorded")
	}
}

func TestApproveSubmission_AlreadyReviewed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	submitter := createUser(t, db, "twice-submitter")
	admin := createUser(t, db, "twice-admin")

	sub := newSubmission("twice-ui", submitter.ID)
	if err := db.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission() error = %v", err)
	}

	if _, err := db.ApproveSubmission(ctx, sub.ID, admin.ID, nil); err != nil {
		t.Fatalf("ApproveSubmission() first error = %v", err)
	}

	_, err := db.ApproveSubmission(ctx, sub.ID, admin.ID, nil)
	if !errors.Is(err, ErrSubmissionNotPending) {
		t.Errorf("ApproveSubmission() second = %v, want ErrSubmissionNotPending", err)
	}

	// Only one library was materialized.
	libs, err := db.GetAllLibraries(ctx)
	if err != nil {
		t.Fatalf("GetAllLibraries() error = %v", err)
	}
	if len(libs) != 1 {
		t.Errorf("GetAllLibraries() = %d libraries, want 1", len(libs))
	}
}

func TestApproveSubmission_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	admin := createUser(t, db, "missing-admin")

	_, err := db.ApproveSubmission(context.Background(), uuid.New(), admin.ID, nil)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("ApproveSubmission() = %v, want ErrSubmissionNotFound", err)
	}
}

func TestRejectSubmission(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	submitter := createUser(t, db, "reject-submitter")
	admin := createUser(t, db, "reject-admin")

	sub := newSubmission("reject-ui", submitter.ID)
	if err := db.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission() error = %v", err)
	}

	notes := "Duplicate listing"
	rejected, err := db.RejectSubmission(ctx, sub.ID, admin.ID, &notes)
	if err != nil {
		t.Fatalf("RejectSubmission() error = %v", err)
	}

	if rejected.Status != models.StatusRejected {
		t.Errorf("status = %q, want %q", rejected.Status, models.StatusRejected)
	}
	if rejected.ReviewedBy == nil || *rejected.ReviewedBy != admin.ID {
		t.Error("reviewed_by not set")
	}
	if rejected.AdminNotes == nil || *rejected.AdminNotes != notes {
		t.Error("admin_notes not recorded")
	}

	// Rejection never publishes a library.
	libs, err := db.GetAllLibraries(ctx)
	if err != nil {
		t.Fatalf("GetAllLibraries() error = %v", err)
	}
	if len(libs) != 0 {
		t.Errorf("GetAllLibraries() = %d libraries, want 0", len(libs))
	}

	// A rejected submission cannot be approved afterwards.
	if _, err := db.ApproveSubmission(ctx, sub.ID, admin.ID, nil); !errors.Is(err, ErrSubmissionNotPending) {
		t.Errorf("ApproveSubmission() after reject = %v, want ErrSubmissionNotPending", err)
	}
}

func TestGetPendingSubmissions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	submitter := createUser(t, db, "pending-submitter")
	admin := createUser(t, db, "pending-admin")

	first := newSubmission("pending-one", submitter.ID)
	second := newSubmission("pending-two", submitter.ID)
	for _, sub := range []*models.Submission{first, second} {
		if err := db.CreateSubmission(ctx, sub); err != nil {
			t.Fatalf("CreateSubmission() error = %v", err)
		}
	}

	if _, err := db.RejectSubmission(ctx, first.ID, admin.ID, nil); err != nil {
		t.Fatalf("RejectSubmission() error = %v", err)
	}

	pending, err := db.GetPendingSubmissions(ctx)
	if err != nil {
		t.Fatalf("GetPendingSubmissions() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "pending-two" {
		t.Fatalf("GetPendingSubmissions() = %v, want only pending-two", pending)
	}
	if pending[0].SubmitterEmail != submitter.Email {
		t.Errorf("SubmitterEmail = %q, want %q", pending[0].SubmitterEmail, submitter.Email)
	}
}

func TestDeleteSubmission(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	owner := createUser(t, db, "delete-owner")

	sub := newSubmission("delete-ui", owner.ID)
	if err := db.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission() error = %v", err)
	}

	if err := db.DeleteSubmission(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteSubmission() error = %v", err)
	}
	if _, err := db.GetSubmissionByID(ctx, sub.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("GetSubmissionByID() after delete = %v, want ErrSubmissionNotFound", err)
	}

	if err := db.DeleteSubmission(ctx, uuid.New()); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("DeleteSubmission(missing) = %v, want ErrSubmissionNotFound", err)
	}
}

func TestGetSubmissionStatusCounts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	submitter := createUser(t, db, "count-submitter")
	admin := createUser(t, db, "count-admin")

	a := newSubmission("count-a", submitter.ID)
	b := newSubmission("count-b", submitter.ID)
	c := newSubmission("count-c", submitter.ID)
	for _, sub := range []*models.Submission{a, b, c} {
		if err := db.CreateSubmission(ctx, sub); err != nil {
			t.Fatalf("CreateSubmission() error = %v", err)
		}
	}
	if _, err := db.ApproveSubmission(ctx, a.ID, admin.ID, nil); err != nil {
		t.Fatalf("ApproveSubmission() error = %v", err)
	}
	if _, err := db.RejectSubmission(ctx, b.ID, admin.ID, nil); err != nil {
		t.Fatalf("RejectSubmission() error = %v", err)
	}

	counts, err := db.GetSubmissionStatusCounts(ctx)
	if err != nil {
		t.Fatalf("GetSubmissionStatusCounts() error = %v", err)
	}
	if counts[models.StatusPending] != 1 || counts[models.StatusApproved] != 1 || counts[models.StatusRejected] != 1 {
		t.Errorf("GetSubmissionStatusCounts() = %v, want one of each", counts)
	}
}
