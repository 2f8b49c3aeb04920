package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// ArtistViewRepository persists [models.ArtistView] rows.
type ArtistViewRepository struct {
	db *sql.DB
}

// NewArtistViewRepository creates a new [ArtistViewRepository] with the given database connection
func NewArtistViewRepository(db *sql.DB) *ArtistViewRepository {
	return &ArtistViewRepository{db: db}
}

// Create inserts a new artist view with a generated ID
func (r *ArtistViewRepository) Create(view *models.ArtistView) error {
	if err := view.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	view.SetID(id)

	query := `INSERT INTO artist_views (id, artist_id, name, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, view.ArtistID(), view.Name(), view.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert artist view: %w", err)
	}
	return nil
}

// List retrieves the most recently opened artists, newest first. A non-positive limit returns every row.
func (r *ArtistViewRepository) List(limit int) ([]*models.ArtistView, error) {
	query := `
		SELECT id, artist_id, name, created_at
		FROM artist_views
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist views: %w", err)
	}
	defer rows.Close()

	var views []*models.ArtistView
	for rows.Next() {
		var (
			id        string
			artistID  string
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &artistID, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan artist view: %w", err)
		}

		view := models.NewArtistView(models.Artist{ID: artistID, Name: name})
		view.SetID(id)
		view.SetCreatedAt(createdAt)
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return views, nil
}
