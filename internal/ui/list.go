package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/desertthunder/artistx/internal/models"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = trackItem{}
	_ list.Item = albumItem{}
	_ list.Item = recentItem("")
)

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return formatter.ArtistRow(i.artist) }
func (i artistItem) Description() string { return "" }

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	index int
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return formatter.TrackRow(i.index, i.track) }
func (i trackItem) Description() string {
	if !i.track.HasPreview() {
		return "[" + formatter.NoPreview + "]"
	}
	return "▶ Preview"
}

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	index int
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Name }
func (i albumItem) Title() string       { return formatter.AlbumRow(i.index, i.album) }
func (i albumItem) Description() string { return "" }

// recentItem is a previous search query shown on the idle screen.
type recentItem string

func (i recentItem) FilterValue() string { return string(i) }
func (i recentItem) Title() string       { return string(i) }
func (i recentItem) Description() string { return "" }

// newList builds a list with filtering, help and its own quit keys disabled so the
// model's key map owns every binding.
func newList(title string, items []list.Item, showDescription bool) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = showDescription
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}

func artistItems(artists []models.Artist) []list.Item {
	items := make([]list.Item, len(artists))
	for i, a := range artists {
		items[i] = artistItem{artist: a}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{index: i + 1, track: t}
	}
	return items
}

func albumItems(albums []models.Album) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{index: i + 1, album: a}
	}
	return items
}

func recentItems(queries []string) []list.Item {
	items := make([]list.Item, len(queries))
	for i, q := range queries {
		items[i] = recentItem(q)
	}
	return items
}
