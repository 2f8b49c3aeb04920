package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/desertthunder/artistx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search lists artists matching the name argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	name, err := nameArg(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("searching artists", "name", name)
	artists, err := r.engine.Search(ctx, nil, name)
	if err != nil {
		return err
	}
	r.recordLogged("search", func(h *repositories.History) error { return h.RecordSearch(name, len(artists)) })

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	switch format := cmd.String("format"); format {
	case formatter.FormatCSV:
		data, err := formatter.ArtistsToCSV(artists)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case formatter.FormatText, "":
		return r.writePlain("%s", formatter.ArtistsToText(artists))
	default:
		return fmt.Errorf("%w: search supports txt or csv, got %q", shared.ErrInvalidFlag, format)
	}
}

// Artist shows the best-matching artist with top tracks and albums, or exports it with --format.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	artist, err := r.resolveArtist(ctx, cmd)
	if err != nil {
		return err
	}

	prog := r.progressLogger()
	res, err := r.engine.FetchDetail(ctx, prog, artist)
	close(prog)
	if err != nil {
		return err
	}
	r.recordLogged("artist view", func(h *repositories.History) error { return h.RecordArtistView(artist) })

	if format := cmd.String("format"); format != "" {
		if err := res.Err(); err != nil {
			return fmt.Errorf("failed to fetch artist detail: %w", err)
		}
		return r.exportArtist(&res.Detail, format, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(res.Detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(res.Detail.Artist.Name)
	a := res.Detail.Artist
	r.writePlain("%s\n", formatter.ArtistMeta(a))
	if a.ExternalURL != "" {
		r.writePlain("Link: %s\n", a.ExternalURL)
	}

	r.writePlainln("Top Tracks")
	if res.TracksErr != nil {
		r.writePlain("%s\n", formatter.TracksFailed(res.TracksErr))
	} else {
		r.writePlain("%s", formatter.TracksToText(res.Detail.Tracks))
	}

	r.writePlainln("Albums")
	if res.AlbumsErr != nil {
		r.writePlain("%s\n", formatter.AlbumsFailed(res.AlbumsErr))
	} else {
		r.writePlain("%s", formatter.AlbumsToText(res.Detail.Albums))
	}
	return nil
}

// Tracks lists the best-matching artist's top tracks.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	artist, err := r.resolveArtist(ctx, cmd)
	if err != nil {
		return err
	}

	tracks, err := r.engine.TopTracks(ctx, nil, artist)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}
	r.writePlain("Top tracks for %s\n\n", artist.Name)
	return r.writePlain("%s", formatter.TracksToText(tracks))
}

// Albums lists the best-matching artist's albums.
func (r *Runner) Albums(ctx context.Context, cmd *cli.Command) error {
	artist, err := r.resolveArtist(ctx, cmd)
	if err != nil {
		return err
	}

	albums, err := r.engine.Albums(ctx, nil, artist)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(albums, cmd.Bool("pretty"))
	}
	r.writePlain("Albums by %s\n\n", artist.Name)
	return r.writePlain("%s", formatter.AlbumsToText(albums))
}

// resolveArtist searches for the name argument and returns the first hit.
func (r *Runner) resolveArtist(ctx context.Context, cmd *cli.Command) (models.Artist, error) {
	if err := r.requireEngine(); err != nil {
		return models.Artist{}, err
	}
	name, err := nameArg(cmd)
	if err != nil {
		return models.Artist{}, err
	}

	artists, err := r.engine.Search(ctx, nil, name)
	if err != nil {
		return models.Artist{}, err
	}
	r.recordLogged("search", func(h *repositories.History) error { return h.RecordSearch(name, len(artists)) })

	if len(artists) == 0 {
		return models.Artist{}, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, name)
	}
	r.logger.Debug("resolved artist", "query", name, "id", artists[0].ID, "name", artists[0].Name)
	return artists[0], nil
}

func (r *Runner) exportArtist(detail *models.ArtistDetail, format, output string) error {
	if !formatter.ValidFormat(format) {
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}

	base := output
	if base == "" {
		base = detail.Artist.ID
	}
	if format == formatter.FormatText || format == formatter.FormatJSON {
		base = strings.TrimSuffix(base, "."+format)
	}

	files, err := tasks.WriteArtist(detail, format, base)
	if err != nil {
		return err
	}

	r.logger.Info("artist exported", "artist", detail.Artist.Name, "format", format, "files", len(files))
	r.writePlain("✓ Exported %s\n", detail.Artist.Name)
	for _, f := range files {
		r.writePlain("  %s\n", f)
	}
	return nil
}

// progressLogger returns a channel whose updates are logged at debug level. The caller closes it.
func (r *Runner) progressLogger() chan tasks.ProgressUpdate {
	ch := make(chan tasks.ProgressUpdate, 8)
	go func() {
		for u := range ch {
			r.logger.Debug(u.Message, "phase", u.Phase.String(), "step", u.Step, "total", u.Total)
		}
	}()
	return ch
}

func nameArg(cmd *cli.Command) (string, error) {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return "", fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}
	return name, nil
}
