// Package models defines domain entities for the artistx catalog browser.
//
// The package contains two categories of types:
//
// 1. Catalog values: lightweight structs decoded from the music catalog API
//   - [Artist] : Search result with popularity, genres, and follower count
//   - [Track] : Top track with an optional preview clip URL
//   - [Album] : Album, single, or compilation release
//   - [ArtistDetail] : An artist with its top tracks and releases
//
// 2. History entities: records persisted to the local SQLite history store
//   - [SearchEntry] : A submitted artist search and how many results it returned
//   - [ArtistView] : An artist opened in the detail view
//   - [PreviewPlay] : A preview clip that was played
//
// History entities implement the [Model] interface providing ID, timestamp, and validation support.
package models
