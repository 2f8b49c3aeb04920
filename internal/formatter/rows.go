package formatter

import (
	"fmt"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// Empty-result and placeholder messages shared by the TUI and CLI.
const (
	NoArtists  = "No artists found."
	NoTracks   = "No tracks found."
	NoAlbums   = "No albums found."
	NoPreview  = "No Preview"
	EmptyQuery = "Please enter an artist name."
	NotAvail   = "N/A"
)

// rowGenres is how many genres an artist row shows.
const rowGenres = 3

// ArtistRow renders "{name}  ·  {followers} followers  ·  {genres}" with at most three genres.
func ArtistRow(a models.Artist) string {
	genres := a.Genres
	if len(genres) > rowGenres {
		genres = genres[:rowGenres]
	}
	return fmt.Sprintf("%s  ·  %d followers  ·  %s", a.Name, a.Followers, shared.JoinOr(genres, ", ", NotAvail))
}

// ArtistMeta renders the detail header line with popularity and every genre.
func ArtistMeta(a models.Artist) string {
	return fmt.Sprintf("Popularity: %d   ·   Genres: %s", a.Popularity, shared.JoinOr(a.Genres, ", ", NotAvail))
}

// TrackRow renders "{i}. {name}" where i starts at 1.
func TrackRow(i int, t models.Track) string {
	return fmt.Sprintf("%d. %s", i, t.Name)
}

// AlbumRow renders "{i}. {name}  ({release_date})" where i starts at 1.
func AlbumRow(i int, a models.Album) string {
	date := a.ReleaseDate
	if date == "" {
		date = NotAvail
	}
	return fmt.Sprintf("%d. %s  (%s)", i, a.Name, date)
}

func SearchFailed(err error) string { return fmt.Sprintf("Search failed: %v", err) }
func TracksFailed(err error) string { return fmt.Sprintf("Failed to load top tracks: %v", err) }
func AlbumsFailed(err error) string { return fmt.Sprintf("Failed to load albums: %v", err) }
