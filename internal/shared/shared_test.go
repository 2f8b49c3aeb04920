package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "artist", "Adele")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "artist=Adele") {
			t.Errorf("unexpected log output %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "artistx.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("written")
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		tt := map[string]log.Level{
			"debug":   log.DebugLevel,
			" WARN ":  log.WarnLevel,
			"error":   log.ErrorLevel,
			"":        log.InfoLevel,
			"garbage": log.InfoLevel,
		}
		for in, want := range tt {
			if got := ParseLogLevel(in); got != want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
			}
		}
	})
}

func TestJoinOr(t *testing.T) {
	if got := JoinOr(nil, ", ", "N/A"); got != "N/A" {
		t.Errorf("JoinOr(nil) = %q", got)
	}
	if got := JoinOr([]string{"pop", "soul"}, ", ", "N/A"); got != "pop, soul" {
		t.Errorf("JoinOr() = %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"a": 1}, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(data) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %q", data)
	}

	data, err = MarshalJSON(map[string]int{"a": 1}, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("unexpected compact output %q", data)
	}
}

func TestTypedErrors(t *testing.T) {
	t.Run("AuthError carries status and body", func(t *testing.T) {
		err := error(&AuthError{StatusCode: 400, Body: `{"error":"invalid_client"}`})
		if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "invalid_client") {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, ErrAuthFailed) {
			t.Error("AuthError should unwrap to ErrAuthFailed")
		}
	})

	t.Run("AuthError wraps transport error", func(t *testing.T) {
		cause := errors.New("dial tcp: refused")
		err := error(&AuthError{Err: cause})
		if !errors.Is(err, cause) || !errors.Is(err, ErrAuthFailed) {
			t.Error("AuthError should unwrap to both the cause and ErrAuthFailed")
		}
	})

	t.Run("CatalogError", func(t *testing.T) {
		err := error(&CatalogError{Op: "Search", StatusCode: 503, Body: "down"})
		if err.Error() != "Search error [503]: down" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, ErrAPIRequest) {
			t.Error("CatalogError should unwrap to ErrAPIRequest")
		}
	})

	t.Run("PreviewError", func(t *testing.T) {
		err := error(&PreviewError{URL: "https://p.scdn.co/x", StatusCode: 404})
		if err.Error() != "preview download error [404]" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, ErrPreviewFailed) {
			t.Error("PreviewError should unwrap to ErrPreviewFailed")
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started []string
	startCommand = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}

	tt := []struct {
		name    string
		goos    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "linux", goos: "linux", url: "https://open.spotify.com/artist/1", want: "xdg-open"},
		{name: "darwin", goos: "darwin", url: "https://open.spotify.com/artist/1", want: "open"},
		{name: "windows", goos: "windows", url: "https://open.spotify.com/artist/1", want: "cmd"},
		{name: "unsupported", goos: "plan9", url: "https://open.spotify.com/artist/1", wantErr: true},
		{name: "empty url", goos: "linux", url: "", wantErr: true},
		{name: "non web scheme", goos: "linux", url: "file:///etc/passwd", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			started = nil
			getRuntime = func() string { return tc.goos }

			err := OpenBrowser(tc.url)
			if (err != nil) != tc.wantErr {
				t.Fatalf("OpenBrowser() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				if started != nil {
					t.Error("no command should start on error")
				}
				return
			}
			if len(started) == 0 || started[0] != tc.want {
				t.Errorf("expected %s, got %v", tc.want, started)
			}
			if started[len(started)-1] != tc.url {
				t.Errorf("expected url as last argument, got %v", started)
			}
		})
	}
}
