package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/desertthunder/artistx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export resolves several artists and writes each one's detail plus a manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	raw := cmd.StringArg("artists")
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read artist list: %w", err)
		}
		raw += "\n" + string(data)
	}

	queries := tasks.ParseQueries(raw)
	if len(queries) == 0 {
		return fmt.Errorf("%w: at least one artist name", shared.ErrMissingArgument)
	}

	r.logger.Info("starting export", "artists", len(queries), "format", cmd.String("format"))

	prog := make(chan tasks.ProgressUpdate, len(queries)*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			if u.Phase == tasks.ExportArtist {
				r.writePlain("[%d/%d] %s\n", u.Step, u.Total, u.Message)
			} else {
				r.logger.Debug(u.Message, "phase", u.Phase.String())
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, prog, queries, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Export complete")
	r.writePlain("Artists:    %d\n", result.TotalArtists)
	r.writePlain("Successful: %d\n", result.SuccessfulExports)
	r.writePlain("Failed:     %d\n", result.FailedExports)
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	r.writePlain("Manifest:   %s\n", result.ManifestPath)

	if result.FailedExports > 0 && result.SuccessfulExports == 0 {
		return fmt.Errorf("%w: no artists exported", shared.ErrAPIRequest)
	}
	return nil
}
