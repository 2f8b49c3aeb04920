package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes config.toml from the bundled template when absent, then creates the history
// database and applies migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	config, created, err := r.ensureConfig(path)
	if err != nil {
		return err
	}
	if created {
		r.writePlain("✓ Wrote %s\n", path)
	} else {
		r.writePlain("Using existing %s\n", path)
	}

	db, err := shared.OpenHistoryDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize history database: %w", err)
	}
	defer db.Close()

	r.logger.Info("history database ready", "path", config.Database.Path)
	r.writePlain("✓ History database ready at %s\n", config.Database.Path)

	config.ApplyEnv(os.Getenv)
	if err := config.Credentials.Validate(); err != nil {
		r.writePlain("Next: %v\n", err)
	}
	return nil
}

// ensureConfig loads the config at path, creating it from the template first if it does not exist.
func (r *Runner) ensureConfig(path string) (*shared.Config, bool, error) {
	created := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("creating config from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			return nil, false, err
		}
		created = true
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, created, err
	}
	return config, created, nil
}
