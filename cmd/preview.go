package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/preview"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Preview clips are 30 seconds long.
const defaultPlayDuration = 30 * time.Second

const barTemplate = `{{ string . "prefix" }} {{ bar . }} {{ percent . }} | {{ speed . "%s/s" }}`

// PreviewPlay plays a top track's preview clip (or --url) and blocks until it ends or the command is interrupted.
func (r *Runner) PreviewPlay(ctx context.Context, cmd *cli.Command) error {
	if r.player == nil {
		return fmt.Errorf("%w: audio player not initialized", shared.ErrServiceUnavailable)
	}

	track, err := r.pickTrack(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Info("playing preview", "track", track.Name, "url", track.PreviewURL)
	if err := r.player.PlayWait(ctx, track.PreviewURL); err != nil {
		return err
	}
	r.recordLogged("preview play", func(h *repositories.History) error { return h.RecordPreviewPlay(track) })

	r.writePlain("▶ %s\n", formatter.TrackRow(cmd.Int("track"), track))
	r.writePlain("Press Ctrl+C to stop\n")

	select {
	case <-ctx.Done():
	case <-time.After(cmd.Duration("duration")):
	}

	if err := r.player.Stop(); err != nil {
		r.logger.Warn("failed to stop playback", "error", err)
	}
	return nil
}

// PreviewSave downloads a top track's preview clip as a tagged MP3.
func (r *Runner) PreviewSave(ctx context.Context, cmd *cli.Command) error {
	track, err := r.pickTrack(ctx, cmd)
	if err != nil {
		return err
	}

	progress, finish := r.progressBar(track.Name)
	path, err := preview.SaveClip(ctx, r.fetcher, track, cmd.String("output"), progress)
	finish()
	if err != nil {
		return err
	}

	r.logger.Info("preview saved", "track", track.Name, "path", path)
	return r.writePlain("✓ Saved %s\n", path)
}

// pickTrack returns the --url clip, or the --track'th top track of the artist named by the argument.
func (r *Runner) pickTrack(ctx context.Context, cmd *cli.Command) (models.Track, error) {
	if url := cmd.String("url"); url != "" {
		return models.Track{Name: url, PreviewURL: url}, nil
	}

	artist, err := r.resolveArtist(ctx, cmd)
	if err != nil {
		return models.Track{}, err
	}

	tracks, err := r.engine.TopTracks(ctx, nil, artist)
	if err != nil {
		return models.Track{}, err
	}

	n := cmd.Int("track")
	if n < 1 || n > len(tracks) {
		return models.Track{}, fmt.Errorf("%w: --track must be between 1 and %d", shared.ErrInvalidFlag, len(tracks))
	}

	track := tracks[n-1]
	if !track.HasPreview() {
		return models.Track{}, fmt.Errorf("%w: %s", shared.ErrNoPreview, track.Name)
	}
	return track, nil
}

// progressBar returns a [preview.ProgressFunc] that renders a download bar on terminals, and a func that finishes it.
func (r *Runner) progressBar(label string) (preview.ProgressFunc, func()) {
	f, ok := r.output.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil, func() {}
	}

	var bar *pb.ProgressBar
	progress := func(total int64, body io.Reader) io.Reader {
		bar = pb.New(0)
		bar.SetWriter(f)
		bar.SetTemplateString(barTemplate)
		bar.Set("prefix", fmt.Sprintf("Downloading %-30s", truncate(label, 30)))
		bar.Set(pb.Bytes, true)
		if total > 0 {
			bar.SetTotal(total)
		}
		bar.Start()
		return bar.NewProxyReader(body)
	}

	return progress, func() {
		if bar != nil {
			bar.Finish()
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
