package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"uilibs/internal/models"
)

var (
	ErrLibraryNotFound      = errors.New("library not found")
	ErrDuplicateLibraryName = errors.New("a library with this name already exists")
)

// libraryColumns is the standard column list for library queries.
const libraryColumns = `id, name, description, about, author, author_bio, website, github,
	preview, gallery, tags, is_paid, is_mobile_friendly, user_id, created_at, updated_at,
	health_status, health_checked_at, health_error`

// scanLibrary scans a row into a Library struct.
func scanLibrary(row pgx.Row) (*models.Library, error) {
	var lib models.Library
	err := row.Scan(
		&lib.ID,
		&lib.Name,
		&lib.Description,
		&lib.About,
		&lib.Author,
		&lib.AuthorBio,
		&lib.Website,
		&lib.GitHub,
		&lib.Preview,
		&lib.Gallery,
		&lib.Tags,
		&lib.IsPaid,
		&lib.IsMobileFriendly,
		&lib.UserID,
		&lib.CreatedAt,
		&lib.UpdatedAt,
		&lib.HealthStatus,
		&lib.HealthCheckedAt,
		&lib.HealthError,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLibraryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lib, nil
}

// scanLibraries scans multiple rows into a slice of Libraries.
func scanLibraries(rows pgx.Rows) ([]models.Library, error) {
	defer rows.Close()

	var libs []models.Library
	for rows.Next() {
		var lib models.Library
		if err := rows.Scan(
			&lib.ID,
			&lib.Name,
			&lib.Description,
			&lib.About,
			&lib.Author,
			&lib.AuthorBio,
			&lib.Website,
			&lib.GitHub,
			&lib.Preview,
			&lib.Gallery,
			&lib.Tags,
			&lib.IsPaid,
			&lib.IsMobileFriendly,
			&lib.UserID,
			&lib.CreatedAt,
			&lib.UpdatedAt,
			&lib.HealthStatus,
			&lib.HealthCheckedAt,
			&lib.HealthError,
		); err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}

	return libs, rows.Err()
}

// CreateLibrary creates a published library directly (admin path, bypassing
// moderation). The approval path inserts inside a transaction instead; see
// ApproveSubmission.
func (d *DB) CreateLibrary(ctx context.Context, lib *models.Library) error {
	query := `
		INSERT INTO libraries (name, description, about, author, author_bio, website, github,
			preview, gallery, tags, is_paid, is_mobile_friendly, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at, health_status
	`

	err := d.Pool.QueryRow(ctx, query,
		lib.Name,
		lib.Description,
		lib.About,
		lib.Author,
		lib.AuthorBio,
		lib.Website,
		lib.GitHub,
		lib.Preview,
		lib.Gallery,
		lib.Tags,
		lib.IsPaid,
		lib.IsMobileFriendly,
		lib.UserID,
	).Scan(&lib.ID, &lib.CreatedAt, &lib.UpdatedAt, &lib.HealthStatus)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateLibraryName
		}
		return err
	}
	return nil
}

// GetLibraryByID retrieves a library by its ID.
func (d *DB) GetLibraryByID(ctx context.Context, id uuid.UUID) (*models.Library, error) {
	query := `SELECT ` + libraryColumns + ` FROM libraries WHERE id = $1`
	return scanLibrary(d.Pool.QueryRow(ctx, query, id))
}

// GetAllLibraries retrieves every published library, newest first. The
// directory page filters and re-sorts this set in memory.
func (d *DB) GetAllLibraries(ctx context.Context) ([]models.Library, error) {
	query := `SELECT ` + libraryColumns + ` FROM libraries ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanLibraries(rows)
}

// GetLibrariesByUser retrieves all libraries owned by a specific user.
func (d *DB) GetLibrariesByUser(ctx context.Context, userID uuid.UUID) ([]models.Library, error) {
	query := `SELECT ` + libraryColumns + ` FROM libraries WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanLibraries(rows)
}

// UpdateLibrary updates a library's descriptive fields and resets website health.
func (d *DB) UpdateLibrary(ctx context.Context, lib *models.Library) error {
	query := `
		UPDATE libraries
		SET name = $1, description = $2, about = $3, author = $4, author_bio = $5,
			website = $6, github = $7, preview = $8, gallery = $9, tags = $10,
			is_paid = $11, is_mobile_friendly = $12,
			health_status = $13, health_checked_at = NULL, health_error = NULL,
			updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		lib.Name,
		lib.Description,
		lib.About,
		lib.Author,
		lib.AuthorBio,
		lib.Website,
		lib.GitHub,
		lib.Preview,
		lib.Gallery,
		lib.Tags,
		lib.IsPaid,
		lib.IsMobileFriendly,
		models.HealthUnknown,
		lib.ID,
	).Scan(&lib.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLibraryNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateLibraryName
	}
	if err == nil {
		lib.HealthStatus = models.HealthUnknown
		lib.HealthCheckedAt = nil
		lib.HealthError = nil
	}
	return err
}

// DeleteLibrary deletes a library by ID.
func (d *DB) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLibraryNotFound
	}
	return nil
}

// UpdateLibraryHealthStatus updates the website health status for a library.
func (d *DB) UpdateLibraryHealthStatus(ctx context.Context, libraryID uuid.UUID, status string, errorMsg *string) error {
	query := `
		UPDATE libraries
		SET health_status = $1, health_checked_at = NOW(), health_error = $2
		WHERE id = $3
	`
	result, err := d.Pool.Exec(ctx, query, status, errorMsg, libraryID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLibraryNotFound
	}
	return nil
}

// GetLibrariesNeedingHealthCheck retrieves libraries with a website whose
// health has not been checked within maxAge.
func (d *DB) GetLibrariesNeedingHealthCheck(ctx context.Context, maxAge time.Duration, limit int) ([]models.Library, error) {
	cutoff := time.Now().Add(-maxAge)
	query := `
		SELECT ` + libraryColumns + `
		FROM libraries
		WHERE website IS NOT NULL AND website <> ''
			AND (health_checked_at IS NULL OR health_checked_at < $1)
		ORDER BY health_checked_at NULLS FIRST
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return scanLibraries(rows)
}
