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
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission has already been reviewed")
)

const submissionColumns = `id, name, description, about, author, author_bio, website, github,
	preview, gallery, tags, is_paid, is_mobile_friendly, user_id, status, admin_notes,
	reviewed_by, reviewed_at, created_at, updated_at`

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Description,
		&sub.About,
		&sub.Author,
		&sub.AuthorBio,
		&sub.Website,
		&sub.GitHub,
		&sub.Preview,
		&sub.Gallery,
		&sub.Tags,
		&sub.IsPaid,
		&sub.IsMobileFriendly,
		&sub.UserID,
		&sub.Status,
		&sub.AdminNotes,
		&sub.ReviewedBy,
		&sub.ReviewedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func scanSubmissions(rows pgx.Rows) ([]models.Submission, error) {
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Description,
			&sub.About,
			&sub.Author,
			&sub.AuthorBio,
			&sub.Website,
			&sub.GitHub,
			&sub.Preview,
			&sub.Gallery,
			&sub.Tags,
			&sub.IsPaid,
			&sub.IsMobileFriendly,
			&sub.UserID,
			&sub.Status,
			&sub.AdminNotes,
			&sub.ReviewedBy,
			&sub.ReviewedAt,
			&sub.CreatedAt,
			&sub.UpdatedAt,
			&sub.SubmitterName,
			&sub.SubmitterEmail,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// CreateSubmission inserts a new submission with pending status.
func (d *DB) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (name, description, about, author, author_bio, website, github,
			preview, gallery, tags, is_paid, is_mobile_friendly, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, status, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		sub.Name,
		sub.Description,
		sub.About,
		sub.Author,
		sub.AuthorBio,
		sub.Website,
		sub.GitHub,
		sub.Preview,
		sub.Gallery,
		sub.Tags,
		sub.IsPaid,
		sub.IsMobileFriendly,
		sub.UserID,
	).Scan(&sub.ID, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
}

// GetSubmissionByID retrieves a submission by its ID.
func (d *DB) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return scanSubmission(d.Pool.QueryRow(ctx, query, id))
}

// GetPendingSubmissions returns all pending submissions with submitter info,
// newest first.
func (d *DB) GetPendingSubmissions(ctx context.Context) ([]models.Submission, error) {
	query := `
		SELECT s.id, s.name, s.description, s.about, s.author, s.author_bio, s.website, s.github,
			s.preview, s.gallery, s.tags, s.is_paid, s.is_mobile_friendly, s.user_id, s.status,
			s.admin_notes, s.reviewed_by, s.reviewed_at, s.created_at, s.updated_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.status = $1
		ORDER BY s.created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, models.StatusPending)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// GetSubmissionsByUser returns all submissions by a user, any status, newest first.
func (d *DB) GetSubmissionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Submission, error) {
	query := `
		SELECT s.id, s.name, s.description, s.about, s.author, s.author_bio, s.website, s.github,
			s.preview, s.gallery, s.tags, s.is_paid, s.is_mobile_friendly, s.user_id, s.status,
			s.admin_notes, s.reviewed_by, s.reviewed_at, s.created_at, s.updated_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanSubmissions(rows)
}

// ApproveSubmission publishes a pending submission as a library and marks the
// submission approved, in a single transaction. Returns the new library.
func (d *DB) ApproveSubmission(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, notes *string) (*models.Library, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sub, err := lockSubmission(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, ErrSubmissionNotPending
	}

	lib := &models.Library{
		Name:             sub.Name,
		Description:      sub.Description,
		About:            sub.About,
		Author:           sub.Author,
		AuthorBio:        sub.AuthorBio,
		Website:          sub.Website,
		GitHub:           sub.GitHub,
		Preview:          sub.Preview,
		Gallery:          sub.Gallery,
		Tags:             sub.Tags,
		IsPaid:           sub.IsPaid,
		IsMobileFriendly: sub.IsMobileFriendly,
		UserID:           sub.UserID,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO libraries (name, description, about, author, author_bio, website, github,
			preview, gallery, tags, is_paid, is_mobile_friendly, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at, health_status
	`,
		lib.Name, lib.Description, lib.About, lib.Author, lib.AuthorBio,
		lib.Website, lib.GitHub, lib.Preview, lib.Gallery, lib.Tags,
		lib.IsPaid, lib.IsMobileFriendly, lib.UserID,
	).Scan(&lib.ID, &lib.CreatedAt, &lib.UpdatedAt, &lib.HealthStatus)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateLibraryName
		}
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE submissions
		SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5
	`, models.StatusApproved, notes, reviewerID, now, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return lib, nil
}

// RejectSubmission marks a pending submission rejected with reviewer metadata.
// No library is created.
func (d *DB) RejectSubmission(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, notes *string) (*models.Submission, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sub, err := lockSubmission(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.StatusPending {
		return nil, ErrSubmissionNotPending
	}

	now := time.Now()
	err = tx.QueryRow(ctx, `
		UPDATE submissions
		SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING status, admin_notes, reviewed_by, reviewed_at, updated_at
	`, models.StatusRejected, notes, reviewerID, now, id).Scan(
		&sub.Status, &sub.AdminNotes, &sub.ReviewedBy, &sub.ReviewedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubmission removes a submission by ID. Callers decide who may
// withdraw what via authz.CanDeleteSubmission before reaching here.
func (d *DB) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// GetSubmissionStatusCounts returns submission counts grouped by status.
func (d *DB) GetSubmissionStatusCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM submissions GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// lockSubmission loads a submission inside a transaction with FOR UPDATE so
// concurrent reviews of the same submission serialize.
func lockSubmission(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 FOR UPDATE`
	return scanSubmission(tx.QueryRow(ctx, query, id))
}
