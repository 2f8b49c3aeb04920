package preview

import (
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// Engine plays audio files. Implementations must be safe for concurrent use.
type Engine interface {
	// Play loads the file at path and starts playback, replacing whatever was playing.
	Play(path string) error

	// Stop halts playback. The loaded file is kept.
	Stop() error

	// Close stops playback and releases the file held by the engine.
	Close() error

	// Initialized reports whether the audio output has been set up.
	Initialized() bool
}

// OtoEngine is an [Engine] backed by go-mp3 decoding and oto audio output.
//
// oto allows one context per process, so the first clip fixes the output sample rate.
type OtoEngine struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	player     *oto.Player
	file       *os.File
}

// NewOtoEngine creates an engine whose audio output is initialized on first use.
func NewOtoEngine() *OtoEngine {
	return &OtoEngine{}
}

func (e *OtoEngine) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open clip: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode clip: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.initLocked(decoder.SampleRate()); err != nil {
		f.Close()
		return err
	}

	e.releaseLocked()

	e.player = e.ctx.NewPlayer(decoder)
	e.file = f
	e.player.Play()
	return nil
}

func (e *OtoEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player != nil {
		e.player.Pause()
	}
	return nil
}

func (e *OtoEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()
	return nil
}

func (e *OtoEngine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx != nil
}

func (e *OtoEngine) initLocked(sampleRate int) error {
	if e.ctx != nil {
		if sampleRate != e.sampleRate {
			return fmt.Errorf("%w: clip is %d Hz, output is %d Hz", shared.ErrEngineMismatch, sampleRate, e.sampleRate)
		}
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize audio output: %w", err)
	}
	<-ready

	e.ctx = ctx
	e.sampleRate = sampleRate
	return nil
}

// releaseLocked closes the current player and its file handle.
func (e *OtoEngine) releaseLocked() {
	if e.player != nil {
		e.player.Pause()
		e.player.Close()
		e.player = nil
	}
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
}
