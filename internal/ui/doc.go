// Package ui implements the interactive artist browser using bubbletea's Elm architecture.
//
// The results region moves through four states:
//  1. [IdleView] : recent searches from the history store
//  2. [SearchingView] : spinner while the search runs
//  3. [ArtistListView] : matching artists, or the inline search error
//  4. [ArtistDetailView] : header plus top tracks and albums, each loading independently
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Catalog work runs in [tea.Cmd] goroutines. Every message from that work carries a [tasks.Ticket]
// and is dropped when a newer search or artist has replaced the screen that asked for it.
//
// Auth and preview failures open a modal; empty search input opens an informational modal.
package ui
