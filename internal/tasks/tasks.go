// package tasks implements the catalog operations shared by the TUI and the CLI.
//
// The core abstraction is Engine, which orchestrates artist searches and artist detail fetches.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/services"
	"github.com/desertthunder/artistx/internal/shared"
	"golang.org/x/sync/errgroup"
)

// DefaultTrackLimit is how many top tracks a detail view shows.
const DefaultTrackLimit = 10

// DetailResult contains an artist's detail with a separate error per section.
//
// A section whose fetch failed is left empty and its error is set; the other section is unaffected.
type DetailResult struct {
	Detail    models.ArtistDetail
	TracksErr error
	AlbumsErr error
}

// Err joins the section errors, or returns nil when both sections loaded.
func (r *DetailResult) Err() error {
	return errors.Join(r.TracksErr, r.AlbumsErr)
}

// Engine defines the catalog operations behind every screen and command.
type Engine interface {
	// Search finds artists by name. An empty or blank name is an invalid argument.
	Search(ctx context.Context, progress chan<- ProgressUpdate, name string) ([]models.Artist, error)

	// TopTracks fetches an artist's top tracks, truncated to the configured limit.
	TopTracks(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) ([]models.Track, error)

	// Albums fetches an artist's releases.
	Albums(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) ([]models.Album, error)

	// FetchDetail fetches top tracks and albums concurrently.
	FetchDetail(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) (*DetailResult, error)
}

// Options configures an [ArtistEngine]. Non-positive limits fall back to the catalog defaults.
type Options struct {
	Market      string
	SearchLimit int
	TrackLimit  int
	AlbumLimit  int
}

// ArtistEngine implements Engine on top of a [services.Catalog].
type ArtistEngine struct {
	catalog services.Catalog
	opts    Options
}

// NewArtistEngine creates a new ArtistEngine with the provided catalog.
func NewArtistEngine(catalog services.Catalog, opts Options) *ArtistEngine {
	if opts.TrackLimit <= 0 {
		opts.TrackLimit = DefaultTrackLimit
	}
	return &ArtistEngine{catalog: catalog, opts: opts}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ArtistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *ArtistEngine) ready() error {
	if e.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// Search finds artists whose name matches the query.
func (e *ArtistEngine) Search(ctx context.Context, progress chan<- ProgressUpdate, name string) ([]models.Artist, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: artist name is required", shared.ErrInvalidArgument)
	}

	e.sendProgress(progress, searchingUpdate(name))

	artists, err := e.catalog.SearchArtists(ctx, name, e.opts.SearchLimit)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, foundArtistsUpdate(artists))
	return artists, nil
}

// TopTracks fetches the artist's top tracks for the configured market.
func (e *ArtistEngine) TopTracks(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) ([]models.Track, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchTracksUpdate(1, 1, artist))

	tracks, err := e.catalog.TopTracks(ctx, artist.ID, e.opts.Market)
	if err != nil {
		return nil, err
	}
	if len(tracks) > e.opts.TrackLimit {
		tracks = tracks[:e.opts.TrackLimit]
	}
	return tracks, nil
}

// Albums fetches the artist's albums, singles, and compilations.
func (e *ArtistEngine) Albums(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) ([]models.Album, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchAlbumsUpdate(1, 1, artist))
	return e.catalog.Albums(ctx, artist.ID, e.opts.AlbumLimit)
}

// FetchDetail fetches top tracks and albums concurrently.
//
// Section failures are recorded on the result and never cancel the sibling fetch.
// The returned error is non-nil only when ctx itself was cancelled.
func (e *ArtistEngine) FetchDetail(ctx context.Context, progress chan<- ProgressUpdate, artist models.Artist) (*DetailResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	result := &DetailResult{Detail: models.ArtistDetail{Artist: artist}}

	var g errgroup.Group
	g.Go(func() error {
		result.Detail.Tracks, result.TracksErr = e.TopTracks(ctx, progress, artist)
		return nil
	})
	g.Go(func() error {
		result.Detail.Albums, result.AlbumsErr = e.Albums(ctx, progress, artist)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
