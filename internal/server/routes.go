package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uilibs/internal/db"
	"uilibs/internal/email"
	"uilibs/internal/handlers"
	"uilibs/internal/handlers/api"
	"uilibs/internal/middleware"
	"uilibs/internal/prefs"
	"uilibs/internal/storage"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, favorites prefs.Store, images storage.Store, notifier *email.Notifier) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Sessions, database)

	// Initialize handlers
	libraryHandler := handlers.NewLibraryHandler(database, s.Cfg, favorites, s.Sessions)
	submissionHandler := handlers.NewSubmissionHandler(database, s.Cfg)
	moderationHandler := handlers.NewModerationHandler(database, s.Cfg)
	adminHandler := handlers.NewAdminHandler(database, s.Cfg, favorites)
	favoriteHandler := handlers.NewFavoriteHandler(favorites, s.Sessions)
	imageHandler := handlers.NewImageHandler(images)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required for submitting and moderating
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. Submissions and moderation need authenticated users.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/login", authHandler.LoginPage)
	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Public directory - browsable without an account
	s.App.Get("/", authMiddleware.OptionalAuth, libraryHandler.Index)
	s.App.Get("/libraries/:id", authMiddleware.OptionalAuth, libraryHandler.Show)
	s.App.Get("/suggest", libraryHandler.Suggest)
	s.App.Post("/favorites/:id/toggle", authMiddleware.OptionalAuth, favoriteHandler.Toggle)

	// Submission routes (signed-in users)
	s.App.Get("/submit", authMiddleware.RequireAuth, submissionHandler.New)
	s.App.Post("/submissions", authMiddleware.RequireAuth, submissionHandler.Create)
	s.App.Get("/my-submissions", authMiddleware.RequireAuth, submissionHandler.MySubmissions)
	s.App.Delete("/submissions/:id", authMiddleware.RequireAuth, submissionHandler.Delete)

	// Image uploads for submissions
	s.App.Post("/images", authMiddleware.RequireAuth, imageHandler.Upload)
	s.App.Delete("/images", authMiddleware.RequireAuth, imageHandler.Remove)

	// Moderation routes (admins only)
	s.App.Get("/moderation", authMiddleware.RequireAuth, moderationHandler.Index)
	s.App.Post("/moderation/:id/approve", authMiddleware.RequireAuth, moderationHandler.Approve)
	s.App.Post("/moderation/:id/reject", authMiddleware.RequireAuth, moderationHandler.Reject)

	// Admin routes (admin only)
	s.App.Get("/admin/new", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.New)
	s.App.Post("/admin/libraries", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Create)
	s.App.Get("/admin/libraries", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Libraries)
	s.App.Get("/admin/libraries/:id/edit", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Edit)
	s.App.Put("/admin/libraries/:id", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Update)
	s.App.Delete("/admin/libraries/:id", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Delete)
	s.App.Get("/admin/images", authMiddleware.RequireAuth, middleware.RequireAdmin, imageHandler.List)
	s.App.Get("/admin/users", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.Users)
	s.App.Post("/admin/users/:id/role", authMiddleware.RequireAuth, middleware.RequireAdmin, adminHandler.UpdateUserRole)

	// JSON API
	apiLibraries := api.NewLibraryHandler(database, s.Cfg)
	apiSubmissions := api.NewSubmissionHandler(database, s.Cfg, notifier)
	apiModeration := api.NewModerationHandler(database, s.Cfg, notifier)
	apiHealth := api.NewHealthHandler(database)

	v1 := s.App.Group("/api/v1")
	v1.Get("/libraries", apiLibraries.List)
	v1.Get("/libraries/:id", apiLibraries.Get)
	v1.Get("/tags", apiLibraries.Tags)
	v1.Get("/suggest", apiLibraries.Suggest)
	v1.Post("/submissions", authMiddleware.RequireAuth, apiSubmissions.Create)
	v1.Get("/submissions", authMiddleware.RequireAuth, apiSubmissions.List)
	v1.Get("/submissions/:id", authMiddleware.RequireAuth, apiSubmissions.Get)
	v1.Delete("/submissions/:id", authMiddleware.RequireAuth, apiSubmissions.Delete)
	v1.Get("/moderation/pending", authMiddleware.RequireAuth, apiModeration.List)
	v1.Post("/moderation/:id/approve", authMiddleware.RequireAuth, apiModeration.Approve)
	v1.Post("/moderation/:id/reject", authMiddleware.RequireAuth, apiModeration.Reject)
	v1.Post("/health/:id", authMiddleware.RequireAuth, apiHealth.CheckLibrary)

	// Kubernetes probes and Prometheus metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
