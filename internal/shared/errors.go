package shared

import (
	"fmt"
	"strings"
)

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrArtistNotFound     = fmt.Errorf("artist not found")

	// Playback errors
	ErrPreviewFailed  = fmt.Errorf("preview failed")
	ErrNoPreview      = fmt.Errorf("track has no preview")
	ErrEngineMismatch = fmt.Errorf("audio engine format mismatch")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ConfigError reports credentials or settings that are required but absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s (set them in the environment, .env or config.toml)", strings.Join(e.Missing, " and "))
}

func (e *ConfigError) Unwrap() error { return ErrMissingCredentials }

// AuthError is returned when the token endpoint rejects the client credentials.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("token error: %v", e.Err)
	}
	return fmt.Sprintf("token error [%d]: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuthFailed}
	}
	return []error{ErrAuthFailed, e.Err}
}

// CatalogError carries the status and body of a failed catalog request.
type CatalogError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s error [%d]: %s", e.Op, e.StatusCode, e.Body)
}

func (e *CatalogError) Unwrap() error { return ErrAPIRequest }

// PreviewError wraps download and audio engine failures for a preview clip.
type PreviewError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *PreviewError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("preview download error [%d]", e.StatusCode)
	}
	return fmt.Sprintf("preview error: %v", e.Err)
}

func (e *PreviewError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPreviewFailed}
	}
	return []error{ErrPreviewFailed, e.Err}
}
