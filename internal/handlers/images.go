package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/models"
	"uilibs/internal/storage"
)

// Allowed upload types and the 5 MB size cap for library images.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageHandler uploads preview and gallery images to object storage.
type ImageHandler struct {
	images storage.Store
}

// NewImageHandler creates a new image handler.
func NewImageHandler(images storage.Store) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload stores an uploaded image and returns its public URL for the form
// to attach to the submission. Keys are scoped per user so Remove can tell
// whose image a key belongs to.
func (h *ImageHandler) Upload(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no image provided")
	}

	if file.Size > maxImageSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "image exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "only png, jpeg, gif, and webp images are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	key := fmt.Sprintf("images/%s/%s%s", user.ID, uuid.New().String(), ext)
	url, err := h.images.Upload(c.Context(), key, src, file.Size, contentType)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "image storage unavailable")
	}

	return c.JSON(fiber.Map{
		"url": url,
		"key": key,
	})
}

// List returns every stored image URL, for the admin media inventory.
func (h *ImageHandler) List(c fiber.Ctx) error {
	keys, err := h.images.List(c.Context(), "images/")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "image storage unavailable")
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, h.images.URL(key))
	}
	return c.JSON(fiber.Map{"images": urls})
}

// Remove deletes a previously uploaded image. The key is taken from the form
// so the submission page can discard images before submitting. Users may
// only remove their own uploads; admins may remove any.
func (h *ImageHandler) Remove(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	key := strings.TrimSpace(c.FormValue("key"))
	if key == "" || !strings.HasPrefix(key, "images/") || strings.Contains(key, "..") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid image key")
	}
	if filepath.Clean(key) != key {
		return fiber.NewError(fiber.StatusBadRequest, "invalid image key")
	}
	if !user.IsAdmin() && !strings.HasPrefix(key, fmt.Sprintf("images/%s/", user.ID)) {
		return fiber.NewError(fiber.StatusForbidden, "you cannot remove this image")
	}

	if err := h.images.Remove(c.Context(), key); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "image storage unavailable")
	}

	return c.SendString("")
}
