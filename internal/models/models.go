// package models defines the data model for the artistx catalog browser
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
// Implementations include SearchEntry, ArtistView, and PreviewPlay.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Artist represents an artist returned by a catalog search.
type Artist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Popularity  int      `json:"popularity"`
	Genres      []string `json:"genres"`
	Followers   int      `json:"followers"`
	ExternalURL string   `json:"external_url"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// Track represents one of an artist's top tracks.
//
// PreviewURL is empty when the catalog offers no preview clip.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ExternalURL string   `json:"external_url"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	DurationMS  int      `json:"duration_ms"`
}

// HasPreview reports whether the track can be previewed.
func (t Track) HasPreview() bool {
	return t.PreviewURL != ""
}

// ArtistNames joins the credited artists with ", ".
func (t Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

// Duration formats DurationMS as m:ss.
func (t Track) Duration() string {
	total := t.DurationMS / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Album represents one of an artist's releases.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	ExternalURL string `json:"external_url"`
	AlbumType   string `json:"album_type"`
	TotalTracks int    `json:"total_tracks"`
}

// ArtistDetail groups an artist with its top tracks and releases.
type ArtistDetail struct {
	Artist Artist  `json:"artist"`
	Tracks []Track `json:"tracks"`
	Albums []Album `json:"albums"`
}
