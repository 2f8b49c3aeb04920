package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/desertthunder/artistx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive artist browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	deps := ui.Deps{
		Engine: r.engine,
		Open:   shared.OpenBrowser,
		Logger: fileLogger,
	}
	if r.player != nil {
		r.player.SetLogger(shared.WithLogger(fileLogger, "component", "preview"))
		deps.Player = r.player
	}
	if r.history != nil {
		deps.History = r.history
	}
	if r.auth != nil {
		deps.Warmup = func(ctx context.Context) error {
			_, err := r.auth.Token(ctx)
			return err
		}
	}

	model := ui.NewModel(ctx, deps)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
