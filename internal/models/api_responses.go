package models

import (
	"time"

	"github.com/google/uuid"
)

// LibraryQueryResponse is the JSON payload for the directory query endpoint.
type LibraryQueryResponse struct {
	Items      []Library `json:"items"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// SuggestionResponse is a single autocomplete entry for the search box.
type SuggestionResponse struct {
	Type    string   `json:"type"` // "library" or "tag"
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Author  string   `json:"author,omitempty"`
	Preview *string  `json:"preview,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Tag     string   `json:"tag,omitempty"`
}

// SubmissionReviewResponse reports the outcome of an approve/reject action.
type SubmissionReviewResponse struct {
	Action     string   `json:"action"` // "approved" or "rejected"
	Submission string   `json:"submission"`
	Library    *Library `json:"library,omitempty"`
}

// HealthCheckAPIResponse reports the result of an on-demand website check.
type HealthCheckAPIResponse struct {
	LibraryID uuid.UUID  `json:"library_id"`
	Status    string     `json:"status"`
	CheckedAt *time.Time `json:"checked_at"`
	Error     string     `json:"error,omitempty"`
}
