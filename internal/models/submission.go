package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents a user-submitted listing awaiting admin review.
// Status starts at pending and moves exactly once to approved or rejected;
// reviewer metadata is set together with the terminal status.
type Submission struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	About            string     `json:"about"`
	Author           string     `json:"author"`
	AuthorBio        string     `json:"author_bio"`
	Website          *string    `json:"website"`
	GitHub           *string    `json:"github"`
	Preview          *string    `json:"preview"`
	Gallery          []string   `json:"gallery"`
	Tags             []string   `json:"tags"`
	IsPaid           bool       `json:"is_paid"`
	IsMobileFriendly bool       `json:"is_mobile_friendly"`
	UserID           uuid.UUID  `json:"user_id"`
	Status           string     `json:"status"` // pending, approved, rejected
	AdminNotes       *string    `json:"admin_notes"`
	ReviewedBy       *uuid.UUID `json:"reviewed_by"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Non-DB fields, populated via JOIN for display
	SubmitterName  string `json:"submitter_name,omitempty"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
}

// IsPending reports whether the submission is still awaiting review.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}
