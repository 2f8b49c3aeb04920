package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind   MsgKind
	ticket tasks.Ticket
	data   any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgWarmup MsgKind = iota
	MsgRecent
	MsgSearchDone
	MsgTracksLoaded
	MsgAlbumsLoaded
	MsgProgressUpdate
	MsgPreviewFailed
	MsgOpenFailed
)

type searchResult struct {
	query   string
	artists []models.Artist
	err     error
}

type tracksResult struct {
	tracks []models.Track
	err    error
}

type albumsResult struct {
	albums []models.Album
	err    error
}

// warmupMsg is the constructor for [MsgWarmup]
func warmupMsg(err error) Msg {
	return Msg{kind: MsgWarmup, data: err}
}

// recentMsg is the constructor for [MsgRecent]
func recentMsg(queries []string) Msg {
	return Msg{kind: MsgRecent, data: queries}
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(ticket tasks.Ticket, query string, artists []models.Artist, err error) Msg {
	return Msg{kind: MsgSearchDone, ticket: ticket, data: searchResult{query, artists, err}}
}

// tracksLoadedMsg is the constructor for [MsgTracksLoaded]
func tracksLoadedMsg(ticket tasks.Ticket, tracks []models.Track, err error) Msg {
	return Msg{kind: MsgTracksLoaded, ticket: ticket, data: tracksResult{tracks, err}}
}

// albumsLoadedMsg is the constructor for [MsgAlbumsLoaded]
func albumsLoadedMsg(ticket tasks.Ticket, albums []models.Album, err error) Msg {
	return Msg{kind: MsgAlbumsLoaded, ticket: ticket, data: albumsResult{albums, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(ticket tasks.Ticket, update progressEnvelope) Msg {
	return Msg{kind: MsgProgressUpdate, ticket: ticket, data: update}
}

// previewFailedMsg is the constructor for [MsgPreviewFailed]
func previewFailedMsg(err error) Msg {
	return Msg{kind: MsgPreviewFailed, data: err}
}

// openFailedMsg is the constructor for [MsgOpenFailed]
func openFailedMsg(err error) Msg {
	return Msg{kind: MsgOpenFailed, data: err}
}
