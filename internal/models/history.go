package models

import (
	"fmt"
	"strings"
	"time"
)

// SearchEntry records an artist search and the number of results it returned.
type SearchEntry struct {
	id          string
	query       string
	resultCount int
	createdAt   time.Time
}

// NewSearchEntry creates a [SearchEntry] for query, stamped with the current time.
func NewSearchEntry(query string, resultCount int) *SearchEntry {
	return &SearchEntry{query: strings.TrimSpace(query), resultCount: resultCount, createdAt: time.Now()}
}

func (s *SearchEntry) ID() string                { return s.id }
func (s *SearchEntry) SetID(id string)           { s.id = id }
func (s *SearchEntry) Query() string             { return s.query }
func (s *SearchEntry) ResultCount() int          { return s.resultCount }
func (s *SearchEntry) CreatedAt() time.Time      { return s.createdAt }
func (s *SearchEntry) SetCreatedAt(at time.Time) { s.createdAt = at }

// Validate ensures the query is not blank and the count is not negative.
func (s *SearchEntry) Validate() error {
	if s.query == "" {
		return fmt.Errorf("search query is required")
	}
	if s.resultCount < 0 {
		return fmt.Errorf("result count cannot be negative: %d", s.resultCount)
	}
	return nil
}

// ArtistView records an artist opened in the detail view.
type ArtistView struct {
	id        string
	artistID  string
	name      string
	createdAt time.Time
}

// NewArtistView creates an [ArtistView] for artist, stamped with the current time.
func NewArtistView(artist Artist) *ArtistView {
	return &ArtistView{artistID: artist.ID, name: artist.Name, createdAt: time.Now()}
}

func (v *ArtistView) ID() string                { return v.id }
func (v *ArtistView) SetID(id string)           { v.id = id }
func (v *ArtistView) ArtistID() string          { return v.artistID }
func (v *ArtistView) Name() string              { return v.name }
func (v *ArtistView) CreatedAt() time.Time      { return v.createdAt }
func (v *ArtistView) SetCreatedAt(at time.Time) { v.createdAt = at }

func (v *ArtistView) Validate() error {
	if v.artistID == "" {
		return fmt.Errorf("artist id is required")
	}
	if v.name == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

// PreviewPlay records a preview clip that was started.
type PreviewPlay struct {
	id         string
	trackName  string
	previewURL string
	createdAt  time.Time
}

// NewPreviewPlay creates a [PreviewPlay] for track, stamped with the current time.
func NewPreviewPlay(track Track) *PreviewPlay {
	return &PreviewPlay{trackName: track.Name, previewURL: track.PreviewURL, createdAt: time.Now()}
}

func (p *PreviewPlay) ID() string                { return p.id }
func (p *PreviewPlay) SetID(id string)           { p.id = id }
func (p *PreviewPlay) TrackName() string         { return p.trackName }
func (p *PreviewPlay) PreviewURL() string        { return p.previewURL }
func (p *PreviewPlay) CreatedAt() time.Time      { return p.createdAt }
func (p *PreviewPlay) SetCreatedAt(at time.Time) { p.createdAt = at }

func (p *PreviewPlay) Validate() error {
	if p.previewURL == "" {
		return fmt.Errorf("preview url is required")
	}
	return nil
}
