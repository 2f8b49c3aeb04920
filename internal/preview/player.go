package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistx/internal/shared"
)

// State is a snapshot of a [Player]'s playback session.
type State struct {
	Initialized bool
	CurrentFile string
	Playing     bool
}

// Player owns a playback session: the engine, the current clip file, and the playing flag.
//
// Safe for concurrent use.
type Player struct {
	engine  Engine
	fetcher *Fetcher
	tempDir string
	logger  *log.Logger

	mu      sync.Mutex
	gen     uint64
	current string
	playing bool
	closed  bool
}

// NewPlayer creates a [Player] that downloads with fetcher and writes clips to tempDir (the OS default when empty).
func NewPlayer(engine Engine, fetcher *Fetcher, tempDir string, logger *log.Logger) *Player {
	if fetcher == nil {
		fetcher = NewFetcher(nil, 0)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Player{engine: engine, fetcher: fetcher, tempDir: tempDir, logger: logger}
}

// SetLogger replaces the player's logger. Call it before starting playback.
func (p *Player) SetLogger(l *log.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Play downloads and plays url in the background. Errors are passed to onError, which may be nil.
func (p *Player) Play(ctx context.Context, url string, onError func(error)) {
	go func() {
		if err := p.PlayWait(ctx, url); err != nil && onError != nil {
			onError(err)
		}
	}()
}

// PlayWait downloads url, writes it to a new temporary file, and loads it into the engine.
//
// If another clip was requested while this one downloaded, this clip is discarded and nil is returned.
func (p *Player) PlayWait(ctx context.Context, url string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("%w: player is closed", shared.ErrPreviewFailed)
	}
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	var buf bytes.Buffer
	if _, err := p.fetcher.Download(ctx, url, &buf, nil); err != nil {
		if p.superseded(gen) {
			p.logger.Debug("dropping error from superseded preview", "url", url, "error", err)
			return nil
		}
		return err
	}

	path, err := p.writeTemp(buf.Bytes())
	if err != nil {
		return &shared.PreviewError{URL: url, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || gen != p.gen {
		p.logger.Debug("discarding superseded preview", "url", url)
		removeFile(p.logger, path)
		return nil
	}

	if err := p.engine.Play(path); err != nil {
		removeFile(p.logger, path)
		return &shared.PreviewError{URL: url, Err: err}
	}

	previous := p.current
	p.current = path
	p.playing = true
	if previous != "" {
		removeFile(p.logger, previous)
	}

	p.logger.Info("playing preview", "url", url, "file", path)
	return nil
}

// Stop halts playback when the engine is initialized and does nothing otherwise.
// The current clip file is kept.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.engine.Initialized() {
		return nil
	}
	if err := p.engine.Stop(); err != nil {
		return &shared.PreviewError{Err: err}
	}
	p.playing = false
	return nil
}

// Close stops playback, releases the engine, and deletes the current clip file.
// Downloads still in flight are discarded when they finish.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.gen++

	var errs []error
	if p.engine.Initialized() {
		errs = append(errs, p.engine.Stop())
	}
	errs = append(errs, p.engine.Close())

	if p.current != "" {
		if err := os.Remove(p.current); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
		p.current = ""
	}
	p.playing = false

	return errors.Join(errs...)
}

// State returns a snapshot of the playback session.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return State{
		Initialized: p.engine.Initialized(),
		CurrentFile: p.current,
		Playing:     p.playing,
	}
}

func (p *Player) superseded(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed || gen != p.gen
}

func (p *Player) writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp(p.tempDir, "preview-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return f.Name(), nil
}

func removeFile(logger *log.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove preview file", "file", path, "error", err)
	}
}
