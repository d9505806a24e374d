package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/models"
)

// ModerationHandler handles the submission review queue.
type ModerationHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(database *db.DB, cfg *config.Config) *ModerationHandler {
	return &ModerationHandler{db: database, cfg: cfg}
}

// Index renders the moderation dashboard with pending submissions.
func (h *ModerationHandler) Index(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not have moderation permissions")
	}

	pending, err := h.db.GetPendingSubmissions(c.Context())
	if err != nil {
		return err
	}

	return c.Render("moderation", MergeBranding(fiber.Map{
		"User":    user,
		"Pending": pending,
	}, h.cfg))
}

// Approve publishes a pending submission as a library.
func (h *ModerationHandler) Approve(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not have moderation permissions")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}

	sub, err := h.db.GetSubmissionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "submission not found")
		}
		return err
	}

	notes := nilIfEmpty(c.FormValue("notes"))
	lib, err := h.db.ApproveSubmission(c.Context(), id, user.ID, notes)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSubmissionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "submission not found")
		case errors.Is(err, db.ErrSubmissionNotPending):
			return fiber.NewError(fiber.StatusConflict, "submission has already been reviewed")
		case errors.Is(err, db.ErrDuplicateLibraryName):
			return fiber.NewError(fiber.StatusConflict, "a library with this name already exists")
		}
		return err
	}

	if Notifier != nil {
		go Notifier.NotifySubmissionApproved(context.Background(), sub, lib, user)
	}

	return c.Render("partials/moderation_success", fiber.Map{
		"Action": "approved",
		"Name":   sub.Name,
	}, "")
}

// Reject declines a pending submission. No library is published.
func (h *ModerationHandler) Reject(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not have moderation permissions")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}

	notes := c.FormValue("notes")
	sub, err := h.db.RejectSubmission(c.Context(), id, user.ID, nilIfEmpty(notes))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSubmissionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "submission not found")
		case errors.Is(err, db.ErrSubmissionNotPending):
			return fiber.NewError(fiber.StatusConflict, "submission has already been reviewed")
		}
		return err
	}

	if Notifier != nil {
		go Notifier.NotifySubmissionRejected(context.Background(), sub, user, notes)
	}

	return c.Render("partials/moderation_success", fiber.Map{
		"Action": "rejected",
		"Name":   sub.Name,
	}, "")
}
