package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistx/internal/preview"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/services"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	if err := run(logger); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func run(logger *log.Logger) error {
	config, err := shared.Resolve(configPath)
	if err != nil {
		return err
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	auth := services.NewAuthSession(config.Credentials, config.Catalog.TokenURL, nil)
	catalog := services.NewSpotifyCatalog(auth, services.CatalogOptions{
		BaseURL:           config.Catalog.APIURL,
		Timeout:           config.Catalog.Timeout(),
		RequestsPerSecond: config.Catalog.RequestsPerSecond,
	})
	api := services.NewAPIService(config.Catalog.APIURL, auth, nil)

	fetcher := preview.NewFetcher(nil, config.Preview.Timeout())
	player := preview.NewPlayer(preview.NewOtoEngine(), fetcher, config.Preview.TempDir, shared.WithLogger(logger, "component", "preview"))
	defer func() {
		if err := player.Close(); err != nil {
			logger.Warn("failed to close player", "error", err)
		}
	}()

	var history *repositories.History
	if db, err := shared.OpenHistoryDatabase(config.Database); err != nil {
		logger.Warn("history disabled", "error", err)
	} else {
		defer db.Close()
		history = repositories.NewHistory(db)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Auth:    auth,
		Catalog: catalog,
		Player:  player,
		Fetcher: fetcher,
		History: history,
		API:     api,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "artistx",
		Usage:    "Search artists, browse top tracks and albums, and play preview clips",
		Version:  "0.1.0",
		Commands: runner.register(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
				return runner.TUI(ctx, cmd)
			}
			return cli.ShowAppHelp(cmd)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, os.Args)
}
