// package services defines interface Catalog for interacting with the music catalog HTTP API
//
// Spotify Web API (client-credentials grant)
package services

import (
	"context"

	"github.com/desertthunder/artistx/internal/models"
)

// Catalog defines the read-only operations the browser needs from a music catalog.
type Catalog interface {
	// SearchArtists searches artists by name. A non-positive limit uses the default of 5.
	SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error)

	// TopTracks retrieves an artist's top tracks for market ("US" when empty).
	// Callers truncate the result to the number of rows they display.
	TopTracks(ctx context.Context, artistID, market string) ([]models.Track, error)

	// Albums retrieves an artist's albums, singles, and compilations.
	// A non-positive limit uses the default of 10.
	Albums(ctx context.Context, artistID string, limit int) ([]models.Album, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}

// TokenProvider supplies bearer tokens to catalog clients.
type TokenProvider interface {
	// Token returns a valid access token, acquiring one if none is cached or the cached one expired.
	Token(ctx context.Context) (string, error)

	// Invalidate drops the cached token so the next call to Token acquires a new one.
	Invalidate()
}
