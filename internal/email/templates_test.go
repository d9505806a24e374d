package email

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"uilibs/internal/config"
	"uilibs/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		SiteTitle: "UI Libraries",
		BaseURL:   "https://libs.example.com",
	}
}

func TestTemplates_BaseHTML(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	html := tmpl.baseHTML("Test Title", "<p>Test content</p>")

	checks := []string{
		"<!DOCTYPE html>",
		"<title>Test Title</title>",
		"UI Libraries",
		"https://libs.example.com",
		"<p>Test content</p>",
	}

	for _, check := range checks {
		if !strings.Contains(html, check) {
			t.Errorf("baseHTML missing %q", check)
		}
	}
}

func TestTemplates_BaseHTML_EscapesHTML(t *testing.T) {
	cfg := testConfig()
	cfg.SiteTitle = "<script>alert('xss')</script>"
	tmpl := NewTemplates(cfg)

	html := tmpl.baseHTML("Test", "Content")

	if strings.Contains(html, "<script>") {
		t.Error("baseHTML should escape HTML in site title")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("baseHTML should contain escaped script tag")
	}
}

func TestTemplates_SubmissionReceived(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	sub := &models.Submission{
		ID:          uuid.New(),
		Name:        "Shade UI",
		Author:      "Shade Labs",
		Description: "Dark-mode components",
	}
	submitter := &models.User{Name: "Pat", Email: "pat@example.com"}

	subject, htmlBody, textBody := tmpl.SubmissionReceived(sub, submitter)

	if !strings.Contains(subject, "Shade UI") {
		t.Errorf("subject = %q, want library name", subject)
	}
	for _, body := range []string{htmlBody, textBody} {
		for _, check := range []string{"Shade UI", "Shade Labs", "pat@example.com", "/moderation"} {
			if !strings.Contains(body, check) {
				t.Errorf("body missing %q", check)
			}
		}
	}
}

func TestTemplates_SubmissionApproved(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	sub := &models.Submission{ID: uuid.New(), Name: "Shade UI"}
	lib := &models.Library{ID: uuid.New(), Name: "Shade UI"}
	approver := &models.User{Name: "Admin Annie"}

	subject, htmlBody, textBody := tmpl.SubmissionApproved(sub, lib, approver)

	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want approval wording", subject)
	}
	for _, body := range []string{htmlBody, textBody} {
		if !strings.Contains(body, lib.ID.String()) {
			t.Error("body missing library link")
		}
		if !strings.Contains(body, "Admin Annie") {
			t.Error("body missing approver name")
		}
	}
}

func TestTemplates_SubmissionRejected(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	sub := &models.Submission{ID: uuid.New(), Name: "Shade UI"}
	reviewer := &models.User{Name: "Admin Annie"}

	subject, htmlBody, textBody := tmpl.SubmissionRejected(sub, reviewer, "Duplicate of an existing listing")

	if !strings.Contains(subject, "not approved") {
		t.Errorf("subject = %q, want rejection wording", subject)
	}
	for _, body := range []string{htmlBody, textBody} {
		if !strings.Contains(body, "Duplicate of an existing listing") {
			t.Error("body missing rejection notes")
		}
	}

	// Without notes the notes block is omitted entirely.
	_, htmlBody, textBody = tmpl.SubmissionRejected(sub, reviewer, "")
	if strings.Contains(htmlBody, "Notes:") || strings.Contains(textBody, "Notes:") {
		t.Error("body should omit notes block when notes are empty")
	}
}

func TestTemplates_HealthCheckFailed(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	website := "https://down.example.com"
	healthErr := "connection refused"
	libs := []models.Library{
		{ID: uuid.New(), Name: "Shade UI", Website: &website, HealthError: &healthErr},
	}

	subject, htmlBody, textBody := tmpl.HealthCheckFailed(libs)

	if !strings.Contains(subject, "1 library website(s)") {
		t.Errorf("subject = %q, want failure count", subject)
	}
	for _, body := range []string{htmlBody, textBody} {
		for _, check := range []string{"Shade UI", website, healthErr} {
			if !strings.Contains(body, check) {
				t.Errorf("body missing %q", check)
			}
		}
	}
}
