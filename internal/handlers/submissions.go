package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/models"
	"uilibs/internal/validation"
)

// SubmissionHandler handles library submissions from users.
type SubmissionHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(database *db.DB, cfg *config.Config) *SubmissionHandler {
	return &SubmissionHandler{db: database, cfg: cfg}
}

// New renders the submission form.
func (h *SubmissionHandler) New(c fiber.Ctx) error {
	return c.Render("submit", MergeBranding(fiber.Map{
		"User": c.Locals("user"),
	}, h.cfg))
}

// Create validates the form and records a pending submission.
func (h *SubmissionHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	input := validation.SubmissionInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		About:       strings.TrimSpace(c.FormValue("about")),
		Author:      strings.TrimSpace(c.FormValue("author")),
		AuthorBio:   strings.TrimSpace(c.FormValue("author_bio")),
		Website:     strings.TrimSpace(c.FormValue("website")),
		GitHub:      strings.TrimSpace(c.FormValue("github")),
		Tags:        tagsFromForm(c.FormValue("tags")),
	}

	if problems := validation.ValidateSubmission(input); len(problems) > 0 {
		return htmxError(c, validation.FirstProblem(problems))
	}

	sub := &models.Submission{
		Name:             input.Name,
		Description:      input.Description,
		About:            input.About,
		Author:           input.Author,
		AuthorBio:        input.AuthorBio,
		Website:          nilIfEmpty(input.Website),
		GitHub:           nilIfEmpty(input.GitHub),
		Preview:          nilIfEmpty(strings.TrimSpace(c.FormValue("preview"))),
		Gallery:          []string{},
		Tags:             input.Tags,
		IsPaid:           c.FormValue("is_paid") == "on",
		IsMobileFriendly: c.FormValue("is_mobile_friendly") == "on",
		UserID:           user.ID,
	}

	if err := h.db.CreateSubmission(c.Context(), sub); err != nil {
		return err
	}

	if Notifier != nil {
		go Notifier.NotifySubmissionReceived(context.Background(), sub, user)
	}

	return c.Render("partials/form_success", fiber.Map{
		"Name":    sub.Name,
		"Message": "Submission received. An admin will review it shortly.",
	}, "")
}

// MySubmissions lists the user's own submissions with their review status.
func (h *SubmissionHandler) MySubmissions(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	subs, err := h.db.GetSubmissionsByUser(c.Context(), user.ID)
	if err != nil {
		return err
	}

	libs, err := h.db.GetLibrariesByUser(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Render("my_submissions", MergeBranding(fiber.Map{
		"User":        user,
		"Submissions": subs,
		"Libraries":   libs,
	}, h.cfg))
}

// Delete withdraws the user's own still-pending submission via HTMX.
func (h *SubmissionHandler) Delete(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	sub, err := h.db.GetSubmissionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "submission not found")
		}
		return err
	}
	if !authz.CanDeleteSubmission(user, sub) {
		return fiber.NewError(fiber.StatusForbidden, "you cannot withdraw this submission")
	}

	if err := h.db.DeleteSubmission(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "submission not found")
		}
		return err
	}

	// Return empty response for HTMX to remove the element
	return c.SendString("")
}

func tagsFromForm(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = validation.NormalizeTag(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
