package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/email"
	"uilibs/internal/models"
)

// ModerationHandler handles submission review via JSON API.
type ModerationHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewModerationHandler creates a new API moderation handler.
func NewModerationHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *ModerationHandler {
	return &ModerationHandler{db: database, cfg: cfg, notifier: notifier}
}

// List returns all pending submissions (admins only).
func (h *ModerationHandler) List(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return jsonError(c, fiber.StatusForbidden, "admin access required")
	}

	pending, err := h.db.GetPendingSubmissions(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}
	if pending == nil {
		pending = []models.Submission{}
	}

	return jsonSuccess(c, pending)
}

// Approve publishes a pending submission as a library (admins only).
func (h *ModerationHandler) Approve(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return jsonError(c, fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	sub, err := h.db.GetSubmissionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submission")
	}

	notes := nilIfEmpty(c.FormValue("notes"))
	lib, err := h.db.ApproveSubmission(c.Context(), id, user.ID, notes)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSubmissionNotFound):
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		case errors.Is(err, db.ErrSubmissionNotPending):
			return jsonError(c, fiber.StatusConflict, "submission has already been reviewed")
		case errors.Is(err, db.ErrDuplicateLibraryName):
			return jsonError(c, fiber.StatusConflict, "a library with this name already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve submission")
	}

	if h.notifier != nil {
		go h.notifier.NotifySubmissionApproved(context.Background(), sub, lib, user)
	}

	return jsonSuccess(c, models.SubmissionReviewResponse{
		Action:     "approved",
		Submission: sub.Name,
		Library:    lib,
	})
}

// Reject declines a pending submission (admins only).
func (h *ModerationHandler) Reject(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanModerate(user) {
		return jsonError(c, fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	notes := c.FormValue("notes")
	sub, err := h.db.RejectSubmission(c.Context(), id, user.ID, nilIfEmpty(notes))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSubmissionNotFound):
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		case errors.Is(err, db.ErrSubmissionNotPending):
			return jsonError(c, fiber.StatusConflict, "submission has already been reviewed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to reject submission")
	}

	if h.notifier != nil {
		go h.notifier.NotifySubmissionRejected(context.Background(), sub, user, notes)
	}

	return jsonSuccess(c, models.SubmissionReviewResponse{
		Action:     "rejected",
		Submission: sub.Name,
	})
}
