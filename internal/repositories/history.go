package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/artistx/internal/models"
)

// Recorder is the write side of [History] used by the TUI and CLI.
type Recorder interface {
	RecordSearch(query string, resultCount int) error
	RecordArtistView(artist models.Artist) error
	RecordPreviewPlay(track models.Track) error
	RecentQueries(limit int) ([]string, error)
}

// History groups the history repositories behind one connection.
type History struct {
	db       *sql.DB
	Searches *SearchRepository
	Views    *ArtistViewRepository
	Plays    *PreviewPlayRepository
}

// NewHistory creates a [History] over a migrated database.
func NewHistory(db *sql.DB) *History {
	return &History{
		db:       db,
		Searches: NewSearchRepository(db),
		Views:    NewArtistViewRepository(db),
		Plays:    NewPreviewPlayRepository(db),
	}
}

func (h *History) RecordSearch(query string, resultCount int) error {
	return h.Searches.Create(models.NewSearchEntry(query, resultCount))
}

func (h *History) RecordArtistView(artist models.Artist) error {
	return h.Views.Create(models.NewArtistView(artist))
}

func (h *History) RecordPreviewPlay(track models.Track) error {
	return h.Plays.Create(models.NewPreviewPlay(track))
}

func (h *History) RecentQueries(limit int) ([]string, error) {
	return h.Searches.RecentQueries(limit)
}

// Clear deletes every history row in a single transaction.
func (h *History) Clear() error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"searches", "artist_views", "preview_plays"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}
