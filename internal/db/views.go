package db

import (
	"context"

	"github.com/google/uuid"
)

// LibraryViewCount pairs a library with its accumulated detail-page views.
type LibraryViewCount struct {
	LibraryID uuid.UUID
	Name      string
	Count     int64
}

// IncrementLibraryView bumps the view counter for a library.
func (d *DB) IncrementLibraryView(ctx context.Context, libraryID uuid.UUID) error {
	query := `
		INSERT INTO library_views (library_id, count)
		VALUES ($1, 1)
		ON CONFLICT (library_id) DO UPDATE SET count = library_views.count + 1
	`
	_, err := d.Pool.Exec(ctx, query, libraryID)
	return err
}

// GetAllLibraryViews returns view counters for all libraries that have any.
func (d *DB) GetAllLibraryViews(ctx context.Context) ([]LibraryViewCount, error) {
	query := `
		SELECT v.library_id, l.name, v.count
		FROM library_views v
		JOIN libraries l ON l.id = v.library_id
		ORDER BY v.count DESC
	`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []LibraryViewCount
	for rows.Next() {
		var v LibraryViewCount
		if err := rows.Scan(&v.LibraryID, &v.Name, &v.Count); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
