// Package services defines the [Catalog] interface for music catalogs and implements it for the Spotify Web API.
//
// # Authentication
//
// [AuthSession] exchanges the application's client id and secret for a bearer token using the
// OAuth2 client-credentials grant ([clientcredentials.Config]). Credentials travel as HTTP Basic auth.
//
// The session caches one token and reuses it until [oauth2.Token.Valid] reports it expired,
// then acquires a new one. [AuthSession.Invalidate] drops the cached token.
//
// # Spotify Implementation
//
// [SpotifyCatalog] issues one authenticated GET per operation, spaced by a [rate.Limiter].
// A 401 response invalidates the session token and the request is retried exactly once with a fresh token.
//
// # Raw Requests
//
// [APIService] performs authenticated GET requests against arbitrary catalog paths and returns
// the raw response, used by the api command for debugging.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ConfigError] : client id or secret missing, raised before any network call
//   - [shared.AuthError] : token endpoint rejected the credentials (status and body attached)
//   - [shared.CatalogError] : catalog request returned a non-2xx status (status and body attached)
//
// # API Mappings
//
// Spotify JSON objects are converted to [models.Artist], [models.Track], and [models.Album]:
//   - followers.total → Artist.Followers
//   - external_urls.spotify → ExternalURL
//   - preview_url (nullable) → Track.PreviewURL, empty when absent
package services
