// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/artistx/internal/models"
)

// MockCatalog is a test double for [services.Catalog]
//
// When Gate is non-nil, TopTracks and Albums block until it is closed or the context is cancelled.
type MockCatalog struct {
	Artists  []models.Artist
	Tracks   []models.Track
	Releases []models.Album

	SearchErr error
	TracksErr error
	AlbumsErr error

	Gate chan struct{}

	mu    sync.Mutex
	calls []string
}

func (m *MockCatalog) SearchArtists(ctx context.Context, name string, limit int) ([]models.Artist, error) {
	m.record("search:" + name)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if limit > 0 && len(m.Artists) > limit {
		return m.Artists[:limit], nil
	}
	return m.Artists, nil
}

func (m *MockCatalog) TopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	m.record("tracks:" + artistID)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Tracks, nil
}

func (m *MockCatalog) Albums(ctx context.Context, artistID string, limit int) ([]models.Album, error) {
	m.record("albums:" + artistID)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.AlbumsErr != nil {
		return nil, m.AlbumsErr
	}
	if limit > 0 && len(m.Releases) > limit {
		return m.Releases[:limit], nil
	}
	return m.Releases, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// Calls returns the operations invoked so far, e.g. "search:Adele" or "tracks:{id}".
func (m *MockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockCatalog) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *MockCatalog) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StaticToken is a test double for [services.TokenProvider] returning a fixed token
type StaticToken struct {
	Value string
	Err   error

	mu          sync.Mutex
	invalidated int
}

func (s *StaticToken) Token(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Value, nil
}

func (s *StaticToken) Invalidate() {
	s.mu.Lock()
	s.invalidated++
	s.mu.Unlock()
}

// Invalidations returns how many times Invalidate was called.
func (s *StaticToken) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// FakeEngine is a test double for [preview.Engine] recording the files it was asked to play
type FakeEngine struct {
	PlayErr error

	mu          sync.Mutex
	initialized bool
	loaded      []string
	stops       int
	closed      bool
}

func (f *FakeEngine) Play(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PlayErr != nil {
		return f.PlayErr
	}
	f.initialized = true
	f.loaded = append(f.loaded, path)
	return nil
}

func (f *FakeEngine) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *FakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FakeEngine) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Loaded returns every path passed to Play in order.
func (f *FakeEngine) Loaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loaded...)
}

// Stops returns how many times Stop was called.
func (f *FakeEngine) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// Closed reports whether Close was called.
func (f *FakeEngine) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
