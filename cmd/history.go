package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/artistx/internal/shared"
	"github.com/urfave/cli/v3"
)

type historyEntry struct {
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type historyDump struct {
	Searches []historyEntry `json:"searches"`
	Views    []historyEntry `json:"artist_views"`
	Plays    []historyEntry `json:"preview_plays"`
}

// HistoryList prints recent searches, artist views and preview plays.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if r.history == nil {
		return fmt.Errorf("%w: history database not available", shared.ErrServiceUnavailable)
	}
	limit := cmd.Int("limit")

	searches, err := r.history.Searches.List(limit)
	if err != nil {
		return err
	}
	views, err := r.history.Views.List(limit)
	if err != nil {
		return err
	}
	plays, err := r.history.Plays.List(limit)
	if err != nil {
		return err
	}

	dump := historyDump{
		Searches: make([]historyEntry, 0, len(searches)),
		Views:    make([]historyEntry, 0, len(views)),
		Plays:    make([]historyEntry, 0, len(plays)),
	}
	for _, s := range searches {
		dump.Searches = append(dump.Searches, historyEntry{
			Kind: "search", Subject: s.Query(), Detail: fmt.Sprintf("%d results", s.ResultCount()), CreatedAt: s.CreatedAt(),
		})
	}
	for _, v := range views {
		dump.Views = append(dump.Views, historyEntry{
			Kind: "artist_view", Subject: v.Name(), Detail: v.ArtistID(), CreatedAt: v.CreatedAt(),
		})
	}
	for _, p := range plays {
		dump.Plays = append(dump.Plays, historyEntry{
			Kind: "preview_play", Subject: p.TrackName(), Detail: p.PreviewURL(), CreatedAt: p.CreatedAt(),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(dump, cmd.Bool("pretty"))
	}

	r.writeSection("Searches", dump.Searches)
	r.writeSection("Artist views", dump.Views)
	r.writeSection("Preview plays", dump.Plays)
	return nil
}

func (r *Runner) writeSection(title string, entries []historyEntry) {
	r.writePlainHeader(title)
	if len(entries) == 0 {
		r.writePlain("(none)\n\n")
		return
	}
	for _, e := range entries {
		r.writePlain("%s  %-30s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Subject, e.Detail)
	}
	r.writePlain("\n")
}

// HistoryClear deletes all recorded history.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if r.history == nil {
		return fmt.Errorf("%w: history database not available", shared.ErrServiceUnavailable)
	}
	if err := r.history.Clear(); err != nil {
		return err
	}
	r.logger.Info("history cleared")
	return r.writePlain("✓ History cleared\n")
}
