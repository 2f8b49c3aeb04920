package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// PreviewPlayRepository persists [models.PreviewPlay] rows.
type PreviewPlayRepository struct {
	db *sql.DB
}

func NewPreviewPlayRepository(db *sql.DB) *PreviewPlayRepository {
	return &PreviewPlayRepository{db: db}
}

// Create inserts a new preview play with a generated ID
func (r *PreviewPlayRepository) Create(play *models.PreviewPlay) error {
	if err := play.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	play.SetID(id)

	query := `INSERT INTO preview_plays (id, track_name, preview_url, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, play.TrackName(), play.PreviewURL(), play.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert preview play: %w", err)
	}
	return nil
}

// List retrieves the most recent preview plays, newest first. A non-positive limit returns every row.
func (r *PreviewPlayRepository) List(limit int) ([]*models.PreviewPlay, error) {
	query := `
		SELECT id, track_name, preview_url, created_at
		FROM preview_plays
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query preview plays: %w", err)
	}
	defer rows.Close()

	var plays []*models.PreviewPlay
	for rows.Next() {
		var (
			id         string
			trackName  string
			previewURL string
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &trackName, &previewURL, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan preview play: %w", err)
		}

		play := models.NewPreviewPlay(models.Track{Name: trackName, PreviewURL: previewURL})
		play.SetID(id)
		play.SetCreatedAt(createdAt)
		plays = append(plays, play)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return plays, nil
}
