package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes an authenticated GET request against the catalog API and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return &shared.CatalogError{Op: "GET " + path, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
