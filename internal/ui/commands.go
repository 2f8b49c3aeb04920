package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/tasks"
)

// progressEnvelope carries an update together with the channel to keep listening on.
type progressEnvelope struct {
	tasks.ProgressUpdate
	ch <-chan tasks.ProgressUpdate
}

func (m *Model) warmup() tea.Cmd {
	return func() tea.Msg {
		return warmupMsg(m.deps.Warmup(m.ctx))
	}
}

func (m *Model) loadRecent() tea.Cmd {
	if m.deps.History == nil {
		return nil
	}
	return func() tea.Msg {
		queries, err := m.deps.History.RecentQueries(recentLimit)
		if err != nil {
			m.logger.Warn("failed to load recent searches", "error", err)
			return nil
		}
		return recentMsg(queries)
	}
}

func (m *Model) search(ctx context.Context, ticket tasks.Ticket, query string, progress chan tasks.ProgressUpdate) tea.Cmd {
	engine, history, logger := m.deps.Engine, m.deps.History, m.logger
	return func() tea.Msg {
		defer close(progress)

		artists, err := engine.Search(ctx, progress, query)
		if err == nil && history != nil {
			if herr := history.RecordSearch(query, len(artists)); herr != nil {
				logger.Warn("failed to record search", "error", herr)
			}
		}
		return searchDoneMsg(ticket, query, artists, err)
	}
}

func (m *Model) fetchTracks(ctx context.Context, ticket tasks.Ticket, artist models.Artist) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		tracks, err := engine.TopTracks(ctx, nil, artist)
		return tracksLoadedMsg(ticket, tracks, err)
	}
}

func (m *Model) fetchAlbums(ctx context.Context, ticket tasks.Ticket, artist models.Artist) tea.Cmd {
	engine := m.deps.Engine
	return func() tea.Msg {
		albums, err := engine.Albums(ctx, nil, artist)
		return albumsLoadedMsg(ticket, albums, err)
	}
}

// waitForProgress reads one update from ch; the listener stops when ch is closed.
func (m *Model) waitForProgress(ticket tasks.Ticket, ch <-chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(ticket, progressEnvelope{ProgressUpdate: update, ch: ch})
	}
}

func (m *Model) waitForPreviewError() tea.Cmd {
	ch := m.previewErrs
	return func() tea.Msg {
		return previewFailedMsg(<-ch)
	}
}

func (m *Model) openURL(url string) tea.Cmd {
	if url == "" || m.deps.Open == nil {
		return nil
	}
	open := m.deps.Open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openFailedMsg(err)
		}
		return nil
	}
}

func (m *Model) record(fn func(repositories.Recorder) error) tea.Cmd {
	if m.deps.History == nil {
		return nil
	}
	history, logger := m.deps.History, m.logger
	return func() tea.Msg {
		if err := fn(history); err != nil {
			logger.Warn("failed to record history", "error", err)
		}
		return nil
	}
}
