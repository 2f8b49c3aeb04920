package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/artistx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

// AuthSession owns the client credentials and the cached bearer token.
//
// Safe for concurrent use.
type AuthSession struct {
	creds      shared.CredentialsConfig
	config     *clientcredentials.Config
	httpClient *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

// NewAuthSession creates an [AuthSession] for creds against tokenURL.
//
// An empty tokenURL uses the Spotify accounts endpoint; a nil client uses a client with a 15 second timeout.
func NewAuthSession(creds shared.CredentialsConfig, tokenURL string, client *http.Client) *AuthSession {
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &AuthSession{
		creds: creds,
		config: &clientcredentials.Config{
			ClientID:     strings.TrimSpace(creds.ClientID),
			ClientSecret: strings.TrimSpace(creds.ClientSecret),
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: client,
	}
}

// Token returns the cached access token while it is valid, otherwise acquires a new one.
func (a *AuthSession) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Valid() {
		return a.token.AccessToken, nil
	}
	return a.acquireLocked(ctx)
}

// Acquire always requests a new token from the token endpoint and caches it.
func (a *AuthSession) Acquire(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.acquireLocked(ctx)
}

// Invalidate drops the cached token.
func (a *AuthSession) Invalidate() {
	a.mu.Lock()
	a.token = nil
	a.mu.Unlock()
}

// Expiry returns the cached token's expiry and whether a token is cached.
func (a *AuthSession) Expiry() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token == nil {
		return time.Time{}, false
	}
	return a.token.Expiry, true
}

func (a *AuthSession) acquireLocked(ctx context.Context) (string, error) {
	if err := a.creds.Validate(); err != nil {
		return "", err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	token, err := a.config.Token(ctx)
	if err != nil {
		a.token = nil
		return "", authError(err)
	}

	a.token = token
	return token.AccessToken, nil
}

// authError maps token endpoint failures to [shared.AuthError].
func authError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &shared.AuthError{
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       strings.TrimSpace(string(retrieveErr.Body)),
		}
	}
	return &shared.AuthError{Err: err}
}
