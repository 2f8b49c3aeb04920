package tasks

import (
	"fmt"

	"github.com/desertthunder/artistx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchArtists Phase = iota
	FetchTracks
	FetchAlbums
	ResolveArtist
	ExportArtist
)

func (p Phase) String() string {
	switch p {
	case SearchArtists:
		return "search_artists"
	case FetchTracks:
		return "fetch_tracks"
	case FetchAlbums:
		return "fetch_albums"
	case ResolveArtist:
		return "resolve_artist"
	case ExportArtist:
		return "export_artist"
	default:
		return ""
	}
}

func searchingUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchArtists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching artists for %q...", name),
	}
}

func foundArtistsUpdate(artists []models.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchArtists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d artists", len(artists)),
		Data:    artists,
	}
}

func fetchTracksUpdate(step, total int, a models.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching top tracks for %s...", a.Name),
	}
}

func fetchAlbumsUpdate(step, total int, a models.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbums,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching albums for %s...", a.Name),
	}
}

func resolvingArtistUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving: %s...", step, total, query),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
