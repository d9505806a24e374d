package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/db"
	"uilibs/internal/models"
	"uilibs/internal/validation"
)

// HealthHandler runs on-demand website checks via JSON API.
type HealthHandler struct {
	db     *db.DB
	client *http.Client
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{
		db: database,
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// CheckLibrary checks a library's website immediately and returns JSON results.
func (h *HealthHandler) CheckLibrary(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if !authz.CanModerate(user) {
		return jsonError(c, fiber.StatusForbidden, "admin access required")
	}

	libraryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid library id")
	}

	lib, err := h.db.GetLibraryByID(c.Context(), libraryID)
	if err != nil {
		if errors.Is(err, db.ErrLibraryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "library not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch library")
	}

	if lib.Website == nil || *lib.Website == "" {
		return jsonError(c, fiber.StatusBadRequest, "library has no website to check")
	}

	var status string
	var errorMsg *string

	if valid, msg := validation.ValidateURLForHealthCheck(*lib.Website); !valid {
		status = models.HealthUnhealthy
		errorMsg = &msg
	} else {
		status, errorMsg = h.checkURL(c.Context(), *lib.Website)
	}

	if err := h.db.UpdateLibraryHealthStatus(c.Context(), libraryID, status, errorMsg); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update health status")
	}

	now := time.Now()
	resp := models.HealthCheckAPIResponse{
		LibraryID: libraryID,
		Status:    status,
		CheckedAt: &now,
	}
	if errorMsg != nil {
		resp.Error = *errorMsg
	}

	return jsonSuccess(c, resp)
}

func (h *HealthHandler) checkURL(ctx context.Context, url string) (string, *string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		errMsg := "invalid URL: " + err.Error()
		return models.HealthUnhealthy, &errMsg
	}

	req.Header.Set("User-Agent", "UILibs-HealthChecker/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		errMsg := "connection failed: " + err.Error()
		return models.HealthUnhealthy, &errMsg
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return models.HealthHealthy, nil
	}

	errMsg := "HTTP " + resp.Status
	return models.HealthUnhealthy, &errMsg
}
