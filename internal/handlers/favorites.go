package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"uilibs/internal/prefs"
)

// FavoriteHandler toggles per-visitor favorite libraries.
type FavoriteHandler struct {
	favorites prefs.Store
	sessions  *session.Store
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favorites prefs.Store, sessions *session.Store) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, sessions: sessions}
}

// Toggle flips a library's favorite state and returns the updated star button.
func (h *FavoriteHandler) Toggle(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid library id")
	}

	owner := favoritesOwner(c, h.sessions)
	if owner == "" {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	favorited, err := h.favorites.Toggle(c.Context(), owner, id.String())
	if err != nil {
		return err
	}

	return c.Render("partials/favorite_button", fiber.Map{
		"LibraryID":  id,
		"IsFavorite": favorited,
	}, "")
}
