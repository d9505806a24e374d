package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission/review status constants.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Website health status constants.
const (
	HealthUnknown   = "unknown"
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// Library represents a published, publicly browsable listing.
type Library struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	About            string    `json:"about"`
	Author           string    `json:"author"`
	AuthorBio        string    `json:"author_bio"`
	Website          *string   `json:"website"`
	GitHub           *string   `json:"github"`
	Preview          *string   `json:"preview"`
	Gallery          []string  `json:"gallery"`
	Tags             []string  `json:"tags"`
	IsPaid           bool      `json:"is_paid"`
	IsMobileFriendly bool      `json:"is_mobile_friendly"`
	UserID           uuid.UUID `json:"user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Website health tracking, maintained by the background checker.
	HealthStatus    string     `json:"health_status"`
	HealthCheckedAt *time.Time `json:"health_checked_at"`
	HealthError     *string    `json:"health_error"`
}

// HasTag reports whether the library carries the given tag.
func (l *Library) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
