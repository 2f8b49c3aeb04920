package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/preview"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/services"
	"github.com/desertthunder/artistx/internal/shared"
	tu "github.com/desertthunder/artistx/internal/testing"
	"github.com/urfave/cli/v3"
)

func testCatalog(previewURL string) *tu.MockCatalog {
	return &tu.MockCatalog{
		Artists: []models.Artist{
			{ID: "adele", Name: "Adele", Followers: 100, Popularity: 90, Genres: []string{"pop", "soul"}},
			{ID: "adele-tribute", Name: "Adele Tribute", Followers: 5},
		},
		Tracks: []models.Track{
			{ID: "t1", Name: "Hello", PreviewURL: previewURL, Artists: []string{"Adele"}, Album: "25", DurationMS: 295000},
			{ID: "t2", Name: "Skyfall", Artists: []string{"Adele"}, DurationMS: 286000},
		},
		Releases: []models.Album{
			{ID: "a1", Name: "25", ReleaseDate: "2015-11-20"},
			{ID: "a2", Name: "21", ReleaseDate: "2011-01-24"},
		},
	}
}

func testHistory(t *testing.T) *repositories.History {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return repositories.NewHistory(db)
}

// newTestRunner wires a runner over catalog with an in-memory history and a buffered output.
func newTestRunner(t *testing.T, opts RunnerOpts) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	opts.Output = output
	opts.Logger = shared.NewLogger(io.Discard)
	if opts.History == nil {
		opts.History = testHistory(t)
	}
	return NewRunner(opts), output
}

// runCLI runs args (without the program name) through the registered commands.
func runCLI(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:      "artistx",
		Commands:  r.register(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
	}
	return app.Run(context.Background(), append([]string{"artistx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			catalog := testCatalog("")
			fetcher := preview.NewFetcher(nil, time.Second)
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Catalog: catalog,
				Fetcher: fetcher,
				API:     api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.fetcher != fetcher {
				t.Error("expected fetcher to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built from the catalog")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.fetcher == nil {
				t.Error("expected default fetcher to be set")
			}
		})

		t.Run("without catalog has no engine", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(io.Discard)})

			if runner.engine != nil {
				t.Error("expected nil engine without a catalog")
			}
			if err := runCLI(runner, "search", "Adele"); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("prints artist rows and records the search", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "search", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 2 rows with ids, got %q", output.String())
		}
		if lines[0] != "1. Adele  ·  100 followers  ·  pop, soul" {
			t.Errorf("unexpected first row %q", lines[0])
		}

		entries, err := runner.history.Searches.List(0)
		if err != nil {
			t.Fatalf("failed to list searches: %v", err)
		}
		if len(entries) != 1 || entries[0].Query() != "Adele" || entries[0].ResultCount() != 2 {
			t.Errorf("unexpected history %+v", entries)
		}
	})

	t.Run("json output", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "search", "--json", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var artists []models.Artist
		if err := json.Unmarshal(output.Bytes(), &artists); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(artists) != 2 || artists[0].ID != "adele" {
			t.Errorf("unexpected artists %+v", artists)
		}
	})

	t.Run("csv output", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "search", "--format", "csv", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(output.String(), "ID,") {
			t.Errorf("expected CSV header, got %q", output.String())
		}
	})

	tt := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing name", args: []string{"search"}, want: shared.ErrMissingArgument},
		{name: "blank name", args: []string{"search", "   "}, want: shared.ErrMissingArgument},
		{name: "unsupported format", args: []string{"search", "--format", "xml", "Adele"}, want: shared.ErrInvalidFlag},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})
			if err := runCLI(runner, tc.args...); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestArtistCommands(t *testing.T) {
	t.Run("artist prints both sections and records the view", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "artist", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		for _, want := range []string{"Adele", "Popularity: 90", "Top Tracks", "1. Hello", "2. Skyfall  [No Preview]", "Albums", "1. 25  (2015-11-20)"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}

		views, err := runner.history.Views.List(0)
		if err != nil {
			t.Fatalf("failed to list views: %v", err)
		}
		if len(views) != 1 || views[0].ArtistID() != "adele" {
			t.Errorf("unexpected views %+v", views)
		}
	})

	t.Run("artist keeps the albums section when tracks fail", func(t *testing.T) {
		catalog := testCatalog("")
		catalog.TracksErr = errors.New("boom")
		runner, output := newTestRunner(t, RunnerOpts{Catalog: catalog})

		if err := runCLI(runner, "artist", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Failed to load top tracks: boom") {
			t.Errorf("expected tracks failure, got:\n%s", out)
		}
		if !strings.Contains(out, "1. 25  (2015-11-20)") {
			t.Errorf("expected albums to render, got:\n%s", out)
		}
	})

	t.Run("artist export writes the requested format", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})
		base := filepath.Join(t.TempDir(), "adele")

		if err := runCLI(runner, "artist", "--format", "json", "--output", base+".json", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var detail models.ArtistDetail
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, base+".json")), &detail); err != nil {
			t.Fatalf("export is not JSON: %v", err)
		}
		if detail.Artist.Name != "Adele" || len(detail.Tracks) != 2 || len(detail.Albums) != 2 {
			t.Errorf("unexpected detail %+v", detail)
		}
		if !strings.Contains(output.String(), "✓ Exported Adele") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("artist export fails when a section fails", func(t *testing.T) {
		catalog := testCatalog("")
		catalog.AlbumsErr = errors.New("boom")
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: catalog})

		err := runCLI(runner, "artist", "--format", "txt", "--output", filepath.Join(t.TempDir(), "adele"), "Adele")
		if err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("expected section error, got %v", err)
		}
	})

	t.Run("artist not found", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: &tu.MockCatalog{}})

		if err := runCLI(runner, "artist", "Nobody"); !errors.Is(err, shared.ErrArtistNotFound) {
			t.Errorf("expected ErrArtistNotFound, got %v", err)
		}
	})

	t.Run("tracks", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "tracks", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Top tracks for Adele") || !strings.Contains(output.String(), "1. Hello") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("albums json", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "albums", "--json", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var albums []models.Album
		if err := json.Unmarshal(output.Bytes(), &albums); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(albums) != 2 {
			t.Errorf("expected 2 albums, got %d", len(albums))
		}
	})
}

func TestPreviewCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	t.Run("save writes a tagged clip", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog(server.URL + "/hello")})
		dir := t.TempDir()

		if err := runCLI(runner, "preview", "save", "--output", dir, "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		path := filepath.Join(dir, "Adele - Hello.mp3")
		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected saved path in output, got %q", output.String())
		}
	})

	t.Run("save rejects a track without preview", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog(server.URL + "/hello")})

		err := runCLI(runner, "preview", "save", "--track", "2", "--output", t.TempDir(), "Adele")
		if !errors.Is(err, shared.ErrNoPreview) {
			t.Errorf("expected ErrNoPreview, got %v", err)
		}
	})

	t.Run("save rejects an out of range track", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog(server.URL + "/hello")})

		err := runCLI(runner, "preview", "save", "--track", "9", "Adele")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("play loads the clip and records the play", func(t *testing.T) {
		engine := &tu.FakeEngine{}
		player := preview.NewPlayer(engine, preview.NewFetcher(nil, time.Second), t.TempDir(), shared.NewLogger(io.Discard))
		t.Cleanup(func() { player.Close() })

		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog(server.URL + "/hello"), Player: player})

		if err := runCLI(runner, "preview", "play", "--duration", "10ms", "Adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(engine.Loaded()) != 1 {
			t.Errorf("expected one clip loaded, got %v", engine.Loaded())
		}
		if engine.Stops() == 0 {
			t.Error("expected playback to be stopped after the duration")
		}
		if !strings.Contains(output.String(), "▶ 1. Hello") {
			t.Errorf("unexpected output %q", output.String())
		}

		plays, err := runner.history.Plays.List(0)
		if err != nil {
			t.Fatalf("failed to list plays: %v", err)
		}
		if len(plays) != 1 || plays[0].TrackName() != "Hello" {
			t.Errorf("unexpected plays %+v", plays)
		}
	})

	t.Run("play by url skips the catalog", func(t *testing.T) {
		engine := &tu.FakeEngine{}
		player := preview.NewPlayer(engine, nil, t.TempDir(), shared.NewLogger(io.Discard))
		t.Cleanup(func() { player.Close() })

		catalog := testCatalog("")
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: catalog, Player: player})

		if err := runCLI(runner, "preview", "play", "--duration", "10ms", "--url", server.URL+"/direct"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(catalog.Calls()) != 0 {
			t.Errorf("expected no catalog calls, got %v", catalog.Calls())
		}
		if len(engine.Loaded()) != 1 {
			t.Errorf("expected one clip loaded, got %v", engine.Loaded())
		}
	})

	t.Run("play without a player", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "preview", "play", "Adele"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("writes each artist and a manifest", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})
		dir := t.TempDir()

		err := runCLI(runner, "export", "--format", "json", "--output", dir, "--rate", "100", "Adele")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "adele.json"))
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
		if !strings.Contains(output.String(), "Successful: 1") {
			t.Errorf("unexpected summary %q", output.String())
		}
	})

	t.Run("reads names from a file", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})
		dir := t.TempDir()
		list := filepath.Join(t.TempDir(), "artists.txt")
		if err := os.WriteFile(list, []byte("Adele\n\n"), 0644); err != nil {
			t.Fatalf("failed to write list: %v", err)
		}

		if err := runCLI(runner, "export", "--file", list, "--output", dir, "--rate", "100"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "adele.json"))
	})

	t.Run("no names", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

		if err := runCLI(runner, "export", " , "); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("every artist failing is an error", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{Catalog: &tu.MockCatalog{}})

		if err := runCLI(runner, "export", "--output", t.TempDir(), "--rate", "100", "Nobody"); err == nil {
			t.Error("expected an error when nothing was exported")
		}
	})
}

func TestHistoryCommands(t *testing.T) {
	runner, output := newTestRunner(t, RunnerOpts{Catalog: testCatalog("")})

	if err := runCLI(runner, "artist", "Adele"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output.Reset()

	t.Run("list", func(t *testing.T) {
		if err := runCLI(runner, "history", "list", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var dump historyDump
		if err := json.Unmarshal(output.Bytes(), &dump); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(dump.Searches) != 1 || dump.Searches[0].Subject != "Adele" {
			t.Errorf("unexpected searches %+v", dump.Searches)
		}
		if len(dump.Views) != 1 || dump.Views[0].Subject != "Adele" {
			t.Errorf("unexpected views %+v", dump.Views)
		}
		if len(dump.Plays) != 0 {
			t.Errorf("expected no plays, got %+v", dump.Plays)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := runCLI(runner, "history", "clear"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		queries, err := runner.history.RecentQueries(10)
		if err != nil {
			t.Fatalf("failed to read recent queries: %v", err)
		}
		if len(queries) != 0 {
			t.Errorf("expected empty history, got %v", queries)
		}
	})

	t.Run("without database", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.NewLogger(io.Discard)})
		if err := runCLI(r, "history", "list"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestAuthStatusCommand(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	t.Run("reports expiry", func(t *testing.T) {
		creds := shared.CredentialsConfig{ClientID: "id", ClientSecret: "secret"}
		auth := services.NewAuthSession(creds, tokenServer.URL, nil)
		runner, output := newTestRunner(t, RunnerOpts{Auth: auth})

		if err := runCLI(runner, "auth", "status", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var status authStatus
		if err := json.Unmarshal(output.Bytes(), &status); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if !status.Authenticated || status.ExpiresAt.Before(time.Now()) {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		auth := services.NewAuthSession(shared.CredentialsConfig{}, tokenServer.URL, nil)
		runner, output := newTestRunner(t, RunnerOpts{Auth: auth})

		err := runCLI(runner, "auth", "status")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if !strings.Contains(output.String(), "✗ Not authenticated") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestAPIGetCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"adele","name":"Adele"}`))
	}))
	defer server.Close()

	api := services.NewAPIService(server.URL, &tu.StaticToken{Value: "tok"}, nil)

	t.Run("prints JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{API: api})

		if err := runCLI(runner, "api", "get", "--pretty=false", "artists/adele"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(output.String()) != `{"id":"adele","name":"Adele"}` {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("non-2xx is a catalog error", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{API: api})

		err := runCLI(runner, "api", "get", "/missing")
		var catalogErr *shared.CatalogError
		if !errors.As(err, &catalogErr) || catalogErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected CatalogError 404, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{API: api})

		if err := runCLI(runner, "api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	runner, output := newTestRunner(t, RunnerOpts{})

	if err := runCLI(runner, "setup", "--config", "config.toml"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tu.AssertFileExists(t, "config.toml")
	tu.AssertFileExists(t, shared.DefaultConfig().Database.Path)
	if !strings.Contains(output.String(), "CLIENT_ID") {
		t.Errorf("expected a hint about missing credentials, got %q", output.String())
	}

	if err := runCLI(runner, "setup", "--config", "config.toml"); err != nil {
		t.Fatalf("setup should be repeatable, got %v", err)
	}
}
