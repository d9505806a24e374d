package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/authz"
	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/models"
	"uilibs/internal/prefs"
	"uilibs/internal/validation"
)

// AdminHandler handles direct library management and user administration.
type AdminHandler struct {
	db        *db.DB
	cfg       *config.Config
	favorites prefs.Store
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(database *db.DB, cfg *config.Config, favorites prefs.Store) *AdminHandler {
	return &AdminHandler{db: database, cfg: cfg, favorites: favorites}
}

// Libraries renders the library management page.
func (h *AdminHandler) Libraries(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	libraries, err := h.db.GetAllLibraries(c.Context())
	if err != nil {
		return err
	}

	data := fiber.Map{
		"User":      user,
		"Libraries": libraries,
	}

	if c.Get("HX-Request") == "true" {
		return c.Render("partials/admin_library_list", data, "")
	}

	return c.Render("admin_libraries", MergeBranding(data, h.cfg))
}

// New renders the direct creation form. Libraries created here skip the
// moderation queue entirely.
func (h *AdminHandler) New(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	return c.Render("admin_new", MergeBranding(fiber.Map{
		"User": user,
	}, h.cfg))
}

// Create publishes a library directly without a submission.
func (h *AdminHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
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

	lib := &models.Library{
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

	if err := h.db.CreateLibrary(c.Context(), lib); err != nil {
		if errors.Is(err, db.ErrDuplicateLibraryName) {
			return htmxError(c, "A library with this name already exists")
		}
		return err
	}

	return c.Render("partials/form_success", fiber.Map{
		"Name":    lib.Name,
		"Message": "Library published.",
	}, "")
}

// Edit renders the inline edit form for a library.
func (h *AdminHandler) Edit(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

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

	return c.Render("partials/admin_edit_form", fiber.Map{
		"Library": lib,
		"User":    user,
	}, "")
}

// Update saves changes to a published library.
func (h *AdminHandler) Update(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

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
		return fiber.NewError(fiber.StatusBadRequest, validation.FirstProblem(problems))
	}

	lib.Name = input.Name
	lib.Description = input.Description
	lib.About = input.About
	lib.Author = input.Author
	lib.AuthorBio = input.AuthorBio
	lib.Website = nilIfEmpty(input.Website)
	lib.GitHub = nilIfEmpty(input.GitHub)
	lib.Tags = input.Tags
	lib.IsPaid = c.FormValue("is_paid") == "on"
	lib.IsMobileFriendly = c.FormValue("is_mobile_friendly") == "on"

	if err := h.db.UpdateLibrary(c.Context(), lib); err != nil {
		if errors.Is(err, db.ErrDuplicateLibraryName) {
			return fiber.NewError(fiber.StatusConflict, "a library with this name already exists")
		}
		return err
	}

	return c.Render("partials/admin_library_row", lib, "")
}

// Delete unpublishes a library entirely.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageLibrary(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid library id")
	}

	if err := h.db.DeleteLibrary(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrLibraryNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "library not found")
		}
		return err
	}

	if h.favorites != nil {
		if err := h.favorites.RemoveLibrary(c.Context(), id.String()); err != nil {
			log.Printf("Failed to clear favorites for deleted library %s: %v", id, err)
		}
	}

	// Return empty response - HTMX will remove the row
	return c.SendString("")
}

// Users renders the user management page.
func (h *AdminHandler) Users(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageUsers(user) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	users, err := h.db.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin_users", MergeBranding(fiber.Map{
		"User":  user,
		"Users": users,
		"Roles": []string{models.RoleUser, models.RoleAdmin},
	}, h.cfg))
}

// UpdateUserRole promotes or demotes a user.
func (h *AdminHandler) UpdateUserRole(c fiber.Ctx) error {
	currentUser, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanManageUsers(currentUser) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user ID")
	}

	role := c.FormValue("role")
	if role != models.RoleUser && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}

	// Prevent admins from demoting themselves
	if userID == currentUser.ID && role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "cannot change your own role")
	}

	if err := h.db.UpdateUserRole(c.Context(), userID, role); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	updated, err := h.db.GetUserByID(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Render("partials/user_row", fiber.Map{
		"UserRow":     updated,
		"CurrentUser": currentUser,
		"Roles":       []string{models.RoleUser, models.RoleAdmin},
	}, "")
}
