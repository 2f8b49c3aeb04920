package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// SearchRepository persists [models.SearchEntry] rows.
type SearchRepository struct {
	db *sql.DB
}

// NewSearchRepository creates a new [SearchRepository] with the given database connection
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Create inserts a new search entry with a generated ID
func (r *SearchRepository) Create(entry *models.SearchEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	query := `INSERT INTO searches (id, query, result_count, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, entry.Query(), entry.ResultCount(), entry.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}
	return nil
}

// List retrieves the most recent searches, newest first. A non-positive limit returns every row.
func (r *SearchRepository) List(limit int) ([]*models.SearchEntry, error) {
	query := `
		SELECT id, query, result_count, created_at
		FROM searches
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	var entries []*models.SearchEntry
	for rows.Next() {
		var (
			id          string
			q           string
			resultCount int
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &q, &resultCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}

		entry := models.NewSearchEntry(q, resultCount)
		entry.SetID(id)
		entry.SetCreatedAt(createdAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

// RecentQueries returns distinct queries ordered by when they were last searched.
func (r *SearchRepository) RecentQueries(limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", shared.ErrInvalidArgument)
	}

	query := `
		SELECT query
		FROM searches
		GROUP BY query
		ORDER BY MAX(created_at) DESC, MAX(rowid) DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent searches: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan recent search: %w", err)
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return queries, nil
}
