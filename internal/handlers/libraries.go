package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"uilibs/internal/catalog"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/metrics"
	"uilibs/internal/models"
	"uilibs/internal/prefs"
)

// LibraryHandler renders the public directory pages.
type LibraryHandler struct {
	db        *db.DB
	cfg       *config.Config
	favorites prefs.Store
	sessions  *session.Store
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(database *db.DB, cfg *config.Config, favorites prefs.Store, sessions *session.Store) *LibraryHandler {
	return &LibraryHandler{db: database, cfg: cfg, favorites: favorites, sessions: sessions}
}

// favoritesOwner identifies whose favorites apply to this request: the signed
// in user, or the anonymous session.
func favoritesOwner(c fiber.Ctx, sessions *session.Store) string {
	if user, ok := c.Locals("user").(*models.User); ok && user != nil {
		return user.ID.String()
	}
	sess, err := sessions.Get(c)
	if err != nil {
		return ""
	}
	return sess.ID()
}

// Index renders the directory with search, filters, sorting, and pagination.
func (h *LibraryHandler) Index(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	favorites, err := h.favorites.List(c.Context(), favoritesOwner(c, h.sessions))
	if err != nil {
		return err
	}

	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return err
	}

	criteria := CriteriaFromQuery(c, favorites)
	result, err := catalog.Query(libraries, criteria)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidSort) {
			return fiber.NewError(fiber.StatusBadRequest, "unrecognized sort option")
		}
		return err
	}

	favoriteSet := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		favoriteSet[id] = true
	}

	data := MergeBranding(fiber.Map{
		"User":       user,
		"Libraries":  result.Items,
		"TotalCount": result.TotalCount,
		"Page":       criteria.Page,
		"TotalPages": result.TotalPages(criteria.PageSize),
		"Criteria":   criteria,
		"Sort":       string(criteria.Sort),
		"AllTags":    catalog.AllTags(libraries),
		"Favorites":  favoriteSet,
	}, h.cfg)

	// If HTMX request, return just the results grid
	if c.Get("HX-Request") == "true" {
		return c.Render("partials/library_grid", data, "")
	}

	return c.Render("index", data)
}

// Show renders a library's detail page and counts the view.
func (h *LibraryHandler) Show(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid library id")
	}

	lib, err := h.db.GetLibraryByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrLibraryNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "library not found")
		}
		return err
	}

	metrics.RecordLibraryView(lib.ID)

	user, _ := c.Locals("user").(*models.User)
	favorites, _ := h.favorites.List(c.Context(), favoritesOwner(c, h.sessions))
	isFavorite := false
	for _, fav := range favorites {
		if fav == lib.ID.String() {
			isFavorite = true
			break
		}
	}

	return c.Render("library", MergeBranding(fiber.Map{
		"User":       user,
		"Library":    lib,
		"IsFavorite": isFavorite,
	}, h.cfg))
}

// Suggest returns autocomplete suggestions for HTMX.
func (h *LibraryHandler) Suggest(c fiber.Ctx) error {
	query := c.Query("q", "")
	if query == "" {
		return c.SendString("")
	}

	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return err
	}

	return c.Render("partials/suggestions", fiber.Map{
		"Suggestions": catalog.Suggest(libraries, query, 5),
		"Query":       query,
	}, "")
}
