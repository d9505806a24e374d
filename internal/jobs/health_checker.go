// Package jobs holds background loops that run alongside the HTTP server.
package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"uilibs/internal/db"
	"uilibs/internal/email"
	"uilibs/internal/models"
	"uilibs/internal/validation"
)

// HealthChecker periodically probes published library websites so the
// directory can flag dead links.
type HealthChecker struct {
	db       *db.DB
	notifier *email.Notifier
	interval time.Duration
	maxAge   time.Duration
	client   *http.Client
}

// NewHealthChecker creates a new health checker. The notifier may be nil to
// disable failure emails.
func NewHealthChecker(database *db.DB, notifier *email.Notifier, interval, maxAge time.Duration) *HealthChecker {
	return &HealthChecker{
		db:       database,
		notifier: notifier,
		interval: interval,
		maxAge:   maxAge,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start begins the background health check loop.
func (h *HealthChecker) Start(ctx context.Context) {
	log.Printf("Health checker started (interval: %v, maxAge: %v)", h.interval, h.maxAge)

	// Run immediately on start
	h.checkAll(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Health checker stopped")
			return
		case <-ticker.C:
			h.checkAll(ctx)
		}
	}
}

// checkAll checks all libraries whose websites are due for a check.
func (h *HealthChecker) checkAll(ctx context.Context) {
	libraries, err := h.db.GetLibrariesNeedingHealthCheck(ctx, h.maxAge, 50)
	if err != nil {
		log.Printf("Health checker: failed to get libraries: %v", err)
		return
	}

	if len(libraries) == 0 {
		return
	}

	log.Printf("Health checker: checking %d libraries", len(libraries))

	var failed []models.Library
	for _, lib := range libraries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lib.Website == nil || *lib.Website == "" {
			continue
		}

		status, errorMsg := h.checkURL(ctx, *lib.Website)
		if err := h.db.UpdateLibraryHealthStatus(ctx, lib.ID, status, errorMsg); err != nil {
			log.Printf("Health checker: failed to update library %s: %v", lib.Name, err)
			continue
		}
		if status == models.HealthUnhealthy && lib.HealthStatus != models.HealthUnhealthy {
			lib.HealthError = errorMsg
			failed = append(failed, lib)
		}

		// Delay between checks to avoid overwhelming external servers
		time.Sleep(1 * time.Second)
	}

	if len(failed) > 0 && h.notifier != nil {
		h.notifier.NotifyHealthCheckFailures(ctx, failed)
	}
}

// checkURL performs a HEAD request to check if a URL is healthy.
// Validates URLs before making requests to prevent SSRF attacks.
func (h *HealthChecker) checkURL(ctx context.Context, url string) (string, *string) {
	if valid, msg := validation.ValidateURLForHealthCheck(url); !valid {
		return models.HealthUnhealthy, &msg
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		errMsg := "invalid URL: " + err.Error()
		return models.HealthUnhealthy, &errMsg
	}

	req.Header.Set("User-Agent", "UILibs-HealthChecker/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		errMsg := "connection failed: " + err.Error()
		return models.HealthUnknown, &errMsg
	}
	defer resp.Body.Close()

	// Any HTTP response means the site is reachable
	return models.HealthHealthy, nil
}
