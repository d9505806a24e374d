package handlers

import (
	"html"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"uilibs/internal/catalog"
	"uilibs/internal/email"
	"uilibs/internal/validation"
)

// Notifier is the global email notifier instance.
// Set during application initialization.
var Notifier *email.Notifier

// SetNotifier sets the global email notifier.
func SetNotifier(n *email.Notifier) {
	Notifier = n
}

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div class="p-3 rounded-lg bg-red-50 dark:bg-red-900/30 text-red-700 dark:text-red-300 text-sm">` + html.EscapeString(message) + `</div>`,
	)
}

// CriteriaFromQuery builds directory query criteria from request parameters.
// The favorites set is supplied by the caller since it lives outside the URL.
func CriteriaFromQuery(c fiber.Ctx, favorites []string) catalog.Criteria {
	return catalog.Criteria{
		Search:         c.Query("q", ""),
		ShowPaid:       boolQuery(c, "paid", true),
		ShowFree:       boolQuery(c, "free", true),
		MobileFriendly: boolQuery(c, "mobile", false),
		OnlyFavorites:  boolQuery(c, "favorites", false),
		Favorites:      favorites,
		Tags:           tagsQuery(c),
		Sort:           catalog.Sort(c.Query("sort", "")),
		Page:           intQuery(c, "page", 1),
		PageSize:       catalog.DefaultPageSize,
	}
}

func boolQuery(c fiber.Ctx, name string, fallback bool) bool {
	v := c.Query(name, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func intQuery(c fiber.Ctx, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name, ""))
	if err != nil {
		return fallback
	}
	return n
}

func tagsQuery(c fiber.Ctx) []string {
	raw := c.Query("tags", "")
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = validation.NormalizeTag(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
