package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistx/internal/preview"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/services"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/desertthunder/artistx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	auth    *services.AuthSession
	catalog services.Catalog
	engine  *tasks.ArtistEngine
	player  *preview.Player
	fetcher *preview.Fetcher
	history *repositories.History
	api     *services.APIService
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Auth    *services.AuthSession
	Catalog services.Catalog
	Player  *preview.Player
	Fetcher *preview.Fetcher
	History *repositories.History
	API     *services.APIService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Fetcher == nil {
		opts.Fetcher = preview.NewFetcher(nil, opts.Config.Preview.Timeout())
	}

	var engine *tasks.ArtistEngine
	if opts.Catalog != nil {
		engine = tasks.NewArtistEngine(opts.Catalog, tasks.Options{
			Market:      opts.Config.Catalog.Market,
			SearchLimit: opts.Config.Catalog.SearchLimit,
			TrackLimit:  opts.Config.Catalog.TopTracksLimit,
			AlbumLimit:  opts.Config.Catalog.AlbumLimit,
		})
	}

	return &Runner{
		config:  opts.Config,
		auth:    opts.Auth,
		catalog: opts.Catalog,
		engine:  engine,
		player:  opts.Player,
		fetcher: opts.Fetcher,
		history: opts.History,
		api:     opts.API,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the logger used by command actions.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, searchCommand, artistCommand, tracksCommand, albumsCommand,
		previewCommand, exportCommand, authCommand, historyCommand, apiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) requireEngine() error {
	if r.engine == nil {
		return fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// recordLogged writes a history entry, logging instead of failing the command when the store errors.
func (r *Runner) recordLogged(what string, fn func(*repositories.History) error) {
	if r.history == nil {
		return
	}
	if err := fn(r.history); err != nil {
		r.logger.Warn("failed to record history", "entry", what, "error", err)
	}
}
