package email

import (
	"fmt"
	"html"
	"strings"

	"uilibs/internal/config"
	"uilibs/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .success { color: #059669; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// SubmissionReceived generates email for admins when a library needs review.
func (t *Templates) SubmissionReceived(sub *models.Submission, submitter *models.User) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New library pending review: %s", t.cfg.SiteTitle, sub.Name)

	content := fmt.Sprintf(`
        <p>A new library has been submitted and requires your review.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">Author:</span> %s</p>
            <p><span class="label">Description:</span> %s</p>
            <p><span class="label">Submitted by:</span> %s (%s)</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/moderation" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Author),
		html.EscapeString(sub.Description),
		html.EscapeString(submitter.Name),
		html.EscapeString(submitter.Email),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New library pending review

Name: %s
Author: %s
Description: %s
Submitted by: %s (%s)

Review at: %s/moderation

--
%s
%s`,
		sub.Name,
		sub.Author,
		sub.Description,
		submitter.Name,
		submitter.Email,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// SubmissionApproved generates email for the submitter when their library is published.
func (t *Templates) SubmissionApproved(sub *models.Submission, lib *models.Library, approver *models.User) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your library '%s' has been approved!", t.cfg.SiteTitle, sub.Name)

	content := fmt.Sprintf(`
        <p>Great news! Your library has been approved and is now listed in the directory.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">Status:</span> <span class="success">Approved</span></p>
            <p><span class="label">Approved by:</span> %s</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/libraries/%s" class="button">View your listing</a>
        </p>
    `,
		html.EscapeString(sub.Name),
		html.EscapeString(approver.Name),
		t.cfg.BaseURL,
		lib.ID,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Your library has been approved!

Name: %s
Status: Approved
Approved by: %s

Your listing: %s/libraries/%s

--
%s
%s`,
		sub.Name,
		approver.Name,
		t.cfg.BaseURL,
		lib.ID,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// SubmissionRejected generates email for the submitter when their library is declined.
func (t *Templates) SubmissionRejected(sub *models.Submission, reviewer *models.User, notes string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your library '%s' was not approved", t.cfg.SiteTitle, sub.Name)

	notesHTML := ""
	notesText := ""
	if notes != "" {
		notesHTML = fmt.Sprintf(`<p><span class="label">Notes:</span> %s</p>`, html.EscapeString(notes))
		notesText = fmt.Sprintf("\nNotes: %s", notes)
	}

	content := fmt.Sprintf(`
        <p>Unfortunately, your library submission was not approved.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">Status:</span> <span class="error">Rejected</span></p>
            <p><span class="label">Reviewed by:</span> %s</p>
            %s
        </div>

        <p>You are welcome to address the notes above and submit again.</p>

        <p style="text-align: center;">
            <a href="%s/submit" class="button">Submit Again</a>
        </p>
    `,
		html.EscapeString(sub.Name),
		html.EscapeString(reviewer.Name),
		notesHTML,
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Your library was not approved

Name: %s
Status: Rejected
Reviewed by: %s%s

You are welcome to address the notes above and submit again: %s/submit

--
%s
%s`,
		sub.Name,
		reviewer.Name,
		notesText,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// HealthCheckFailed generates email for admins when library websites fail their checks.
func (t *Templates) HealthCheckFailed(libraries []models.Library) (subject, htmlBody, textBody string) {
	count := len(libraries)
	subject = fmt.Sprintf("[%s] %d library website(s) failed health check", t.cfg.SiteTitle, count)

	var itemsHTML strings.Builder
	var itemsText strings.Builder

	for _, lib := range libraries {
		website := ""
		if lib.Website != nil {
			website = *lib.Website
		}
		errorMsg := "Unknown error"
		if lib.HealthError != nil {
			errorMsg = *lib.HealthError
		}

		itemsHTML.WriteString(fmt.Sprintf(`
            <div class="info-box">
                <p><span class="label">Library:</span> %s</p>
                <p><span class="label">Website:</span> <a href="%s">%s</a></p>
                <p><span class="label">Error:</span> <span class="error">%s</span></p>
            </div>
        `,
			html.EscapeString(lib.Name),
			html.EscapeString(website),
			html.EscapeString(website),
			html.EscapeString(errorMsg),
		))

		itemsText.WriteString(fmt.Sprintf("\n- %s: %s\n  Error: %s\n", lib.Name, website, errorMsg))
	}

	content := fmt.Sprintf(`
        <p>The following %d library website(s) failed their health check and may be broken:</p>
        %s
        <p style="text-align: center;">
            <a href="%s/admin" class="button">Review in Admin</a>
        </p>
    `,
		count,
		itemsHTML.String(),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Health Check Alert

%d library website(s) failed their health check:
%s
Review at: %s/admin

--
%s
%s`,
		count,
		itemsText.String(),
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}
