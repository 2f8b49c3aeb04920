// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	defaultSearchLimit = 5
	defaultAlbumLimit  = 10
	defaultMarket      = "US"
	albumGroups        = "album,single,compilation"
)

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist object.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Popularity   int            `json:"popularity"`
	Genres       []string       `json:"genres"`
	Followers    followers      `json:"followers"`
	ExternalURLs externalURLs   `json:"external_urls"`
	Images       []SpotifyImage `json:"images"`
}

// SpotifyTrack represents a Spotify track object. PreviewURL is null for tracks without a clip.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PreviewURL   *string         `json:"preview_url"`
	DurationMS   int             `json:"duration_ms"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

// SpotifyAlbum represents a Spotify album object.
type SpotifyAlbum struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type searchResponse struct {
	Artists struct {
		Items []SpotifyArtist `json:"items"`
	} `json:"artists"`
}

type topTracksResponse struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

type albumsResponse struct {
	Items []SpotifyAlbum `json:"items"`
}

// CatalogOptions configures a [SpotifyCatalog]. Zero values select defaults.
type CatalogOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// SpotifyCatalog implements the [Catalog] interface for the Spotify Web API.
// Requests are authorized with tokens from a [TokenProvider] and spaced by a [rate.Limiter].
type SpotifyCatalog struct {
	baseURL    string
	httpClient *http.Client
	auth       TokenProvider
	limiter    *rate.Limiter
}

// NewSpotifyCatalog creates a new Spotify catalog client using auth for bearer tokens.
func NewSpotifyCatalog(auth TokenProvider, opts CatalogOptions) *SpotifyCatalog {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &SpotifyCatalog{
		baseURL:    baseURL,
		httpClient: client,
		auth:       auth,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// SearchArtists searches artists by name and returns artists.items.
func (s *SpotifyCatalog) SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: artist name is required", shared.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))

	var response searchResponse
	if err := s.doRequest(ctx, "Search", "/search", query, &response); err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(response.Artists.Items))
	for _, item := range response.Artists.Items {
		artists = append(artists, item.toModel())
	}
	return artists, nil
}

// TopTracks retrieves an artist's top tracks for market.
func (s *SpotifyCatalog) TopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artist id is required", shared.ErrInvalidArgument)
	}
	if market == "" {
		market = defaultMarket
	}

	query := url.Values{}
	query.Set("market", market)

	endpoint := fmt.Sprintf("/artists/%s/top-tracks", url.PathEscape(artistID))

	var response topTracksResponse
	if err := s.doRequest(ctx, "Top tracks", endpoint, query, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks))
	for _, item := range response.Tracks {
		tracks = append(tracks, item.toModel())
	}
	return tracks, nil
}

// Albums retrieves an artist's albums, singles, and compilations for the US market.
func (s *SpotifyCatalog) Albums(ctx context.Context, artistID string, limit int) ([]models.Album, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artist id is required", shared.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultAlbumLimit
	}

	query := url.Values{}
	query.Set("include_groups", albumGroups)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("market", defaultMarket)

	endpoint := fmt.Sprintf("/artists/%s/albums", url.PathEscape(artistID))

	var response albumsResponse
	if err := s.doRequest(ctx, "Albums", endpoint, query, &response); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(response.Items))
	for _, item := range response.Items {
		albums = append(albums, item.toModel())
	}
	return albums, nil
}

// doRequest performs an authenticated GET request to the Spotify API and decodes the body into result.
//
// A 401 invalidates the cached token and the request is retried once with a new token.
func (s *SpotifyCatalog) doRequest(ctx context.Context, op, endpoint string, query url.Values, result any) error {
	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		resp, err := s.send(ctx, apiURL)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			resp.Body.Close()
			s.auth.Invalidate()
			continue
		}

		return decodeResponse(op, resp, result)
	}
}

func (s *SpotifyCatalog) send(ctx context.Context, apiURL string) (*http.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func decodeResponse(op string, resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &shared.CatalogError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (a SpotifyArtist) toModel() models.Artist {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	artist := models.Artist{
		ID:          a.ID,
		Name:        a.Name,
		Popularity:  a.Popularity,
		Genres:      genres,
		Followers:   a.Followers.Total,
		ExternalURL: a.ExternalURLs.Spotify,
	}
	// images are ordered widest first
	if len(a.Images) > 0 {
		artist.ImageURL = a.Images[0].URL
	}
	return artist
}

func (t SpotifyTrack) toModel() models.Track {
	track := models.Track{
		ID:          t.ID,
		Name:        t.Name,
		ExternalURL: t.ExternalURLs.Spotify,
		Album:       t.Album.Name,
		DurationMS:  t.DurationMS,
	}
	if t.PreviewURL != nil {
		track.PreviewURL = *t.PreviewURL
	}
	for _, artist := range t.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	return track
}

func (a SpotifyAlbum) toModel() models.Album {
	return models.Album{
		ID:          a.ID,
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		ExternalURL: a.ExternalURLs.Spotify,
		AlbumType:   a.AlbumType,
		TotalTracks: a.TotalTracks,
	}
}
