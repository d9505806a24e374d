package handlers

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"uilibs/internal/config"
	"uilibs/internal/models"
)

func newAdminApp(user *models.User) *fiber.App {
	app := fiber.New()
	h := NewAdminHandler(nil, &config.Config{}, nil)
	inject := func(c fiber.Ctx) error {
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	}
	app.Post("/admin/libraries", inject, h.Create)
	app.Put("/admin/libraries/:id", inject, h.Update)
	return app
}

func TestAdminCreate_RequiresAdmin(t *testing.T) {
	app := newAdminApp(&models.User{ID: uuid.New(), Role: models.RoleUser})

	req := httptest.NewRequest("POST", "/admin/libraries", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestAdminCreate_ReportsFirstValidationProblem(t *testing.T) {
	app := newAdminApp(&models.User{ID: uuid.New(), Role: models.RoleAdmin})

	// No name, no description, no author: the name message wins every time.
	form := url.Values{}
	form.Set("tags", "forms")

	req := httptest.NewRequest("POST", "/admin/libraries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (inline form error)", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "Name is required") {
		t.Errorf("body = %q, want it to contain %q", raw, "Name is required")
	}
}

func TestAdminUpdate_RequiresAdmin(t *testing.T) {
	app := newAdminApp(&models.User{ID: uuid.New(), Role: models.RoleUser})

	req := httptest.NewRequest("PUT", "/admin/libraries/"+uuid.New().String(), strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}
