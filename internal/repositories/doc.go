// Package repositories implements SQLite persistence for the browsing history.
//
// Each repository handles inserts, recent-first listing and clearing for one table.
// Rows are append-only; there are no updates or soft deletes.
//
// Key Implementations:
//   - [SearchRepository] : artist searches with their result counts
//   - [ArtistViewRepository] : artists opened in the detail view
//   - [PreviewPlayRepository] : preview clips that were started
//   - [History] : the facade the TUI and CLI record through
package repositories
