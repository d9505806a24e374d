package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/email"
	"uilibs/internal/models"
	"uilibs/internal/validation"
)

// SubmissionHandler handles submission operations via JSON API.
type SubmissionHandler struct {
	db       *db.DB
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSubmissionHandler creates a new API submission handler.
func NewSubmissionHandler(database *db.DB, cfg *config.Config, notifier *email.Notifier) *SubmissionHandler {
	return &SubmissionHandler{db: database, cfg: cfg, notifier: notifier}
}

// Create records a pending submission.
func (h *SubmissionHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		About       string   `json:"about"`
		Author      string   `json:"author"`
		AuthorBio   string   `json:"author_bio"`
		Website     string   `json:"website"`
		GitHub      string   `json:"github"`
		Preview     string   `json:"preview"`
		Gallery     []string `json:"gallery"`
		Tags        []string `json:"tags"`
		IsPaid      bool     `json:"is_paid"`
		IsMobile    bool     `json:"is_mobile_friendly"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	tags := make([]string, 0, len(body.Tags))
	for _, tag := range body.Tags {
		if tag = validation.NormalizeTag(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	input := validation.SubmissionInput{
		Name:        strings.TrimSpace(body.Name),
		Description: strings.TrimSpace(body.Description),
		About:       strings.TrimSpace(body.About),
		Author:      strings.TrimSpace(body.Author),
		AuthorBio:   strings.TrimSpace(body.AuthorBio),
		Website:     strings.TrimSpace(body.Website),
		GitHub:      strings.TrimSpace(body.GitHub),
		Tags:        tags,
	}
	if problems := validation.ValidateSubmission(input); len(problems) > 0 {
		return jsonError(c, fiber.StatusBadRequest, validation.FirstProblem(problems))
	}

	gallery := body.Gallery
	if gallery == nil {
		gallery = []string{}
	}

	sub := &models.Submission{
		Name:             input.Name,
		Description:      input.Description,
		About:            input.About,
		Author:           input.Author,
		AuthorBio:        input.AuthorBio,
		Website:          nilIfEmpty(input.Website),
		GitHub:           nilIfEmpty(input.GitHub),
		Preview:          nilIfEmpty(strings.TrimSpace(body.Preview)),
		Gallery:          gallery,
		Tags:             input.Tags,
		IsPaid:           body.IsPaid,
		IsMobileFriendly: body.IsMobile,
		UserID:           user.ID,
	}

	if err := h.db.CreateSubmission(c.Context(), sub); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create submission")
	}

	if h.notifier != nil {
		go h.notifier.NotifySubmissionReceived(context.Background(), sub, user)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   sub,
	})
}

// List returns the caller's own submissions.
func (h *SubmissionHandler) List(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	subs, err := h.db.GetSubmissionsByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	return jsonSuccess(c, subs)
}

// Get returns one submission; only the submitter or an admin may view it.
func (h *SubmissionHandler) Get(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
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

	if !authz.CanViewSubmission(user, sub) {
		return jsonError(c, fiber.StatusForbidden, "you do not have permission to view this submission")
	}

	return jsonSuccess(c, sub)
}

// Delete withdraws the caller's own still-pending submission.
func (h *SubmissionHandler) Delete(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
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
	if !authz.CanDeleteSubmission(user, sub) {
		return jsonError(c, fiber.StatusForbidden, "you cannot withdraw this submission")
	}

	if err := h.db.DeleteSubmission(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete submission")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "submission withdrawn",
	})
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
