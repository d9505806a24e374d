package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/catalog"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/handlers"
	"uilibs/internal/metrics"
	"uilibs/internal/models"
)

// LibraryHandler serves the public directory via JSON API.
type LibraryHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewLibraryHandler creates a new API library handler.
func NewLibraryHandler(database *db.DB, cfg *config.Config) *LibraryHandler {
	return &LibraryHandler{db: database, cfg: cfg}
}

// List returns a page of libraries matching the query parameters. The API has
// no favorites notion, so the favorites filter always matches nothing here.
func (h *LibraryHandler) List(c fiber.Ctx) error {
	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch libraries")
	}

	criteria := handlers.CriteriaFromQuery(c, nil)
	result, err := catalog.Query(libraries, criteria)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidSort) {
			return jsonError(c, fiber.StatusBadRequest, "unrecognized sort option")
		}
		return jsonError(c, fiber.StatusInternalServerError, "query failed")
	}

	items := result.Items
	if items == nil {
		items = []models.Library{}
	}

	return jsonSuccess(c, models.LibraryQueryResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: result.TotalPages(criteria.PageSize),
	})
}

// Get returns a single library by ID.
func (h *LibraryHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid library id")
	}

	lib, err := h.db.GetLibraryByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrLibraryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "library not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch library")
	}

	metrics.RecordLibraryView(lib.ID)

	return jsonSuccess(c, lib)
}

// Tags returns every tag in use across the directory, sorted.
func (h *LibraryHandler) Tags(c fiber.Ctx) error {
	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch libraries")
	}

	tags := catalog.AllTags(libraries)
	if tags == nil {
		tags = []string{}
	}
	return jsonSuccess(c, tags)
}

// Suggest returns autocomplete entries for the search box.
func (h *LibraryHandler) Suggest(c fiber.Ctx) error {
	query := c.Query("q", "")

	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch libraries")
	}

	suggestions := []models.SuggestionResponse{}
	for _, s := range catalog.Suggest(libraries, query, 10) {
		if s.Library != nil {
			suggestions = append(suggestions, models.SuggestionResponse{
				Type:    "library",
				ID:      s.Library.ID.String(),
				Name:    s.Library.Name,
				Author:  s.Library.Author,
				Preview: s.Library.Preview,
				Tags:    s.Library.Tags,
			})
		} else {
			suggestions = append(suggestions, models.SuggestionResponse{
				Type: "tag",
				Tag:  s.Tag,
			})
		}
	}

	return jsonSuccess(c, suggestions)
}
