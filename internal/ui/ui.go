package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/repositories"
	"github.com/desertthunder/artistx/internal/shared"
	"github.com/desertthunder/artistx/internal/tasks"
)

// ViewState represents what the results region shows.
type ViewState int

const (
	IdleView ViewState = iota
	SearchingView
	ArtistListView
	ArtistDetailView
)

type section int

const (
	tracksSection section = iota
	albumsSection
)

type sectionState int

const (
	sectionLoading sectionState = iota
	sectionReady
	sectionFailed
)

type focus int

const (
	focusInput focus = iota
	focusResults
)

const recentLimit = 8

// Previewer plays preview clips selected in the detail view.
type Previewer interface {
	Play(ctx context.Context, url string, onError func(error))
	Stop() error
}

// Deps holds the collaborators the [Model] runs work against. Only Engine is required.
type Deps struct {
	Engine  tasks.Engine
	Player  Previewer
	History repositories.Recorder
	Warmup  func(ctx context.Context) error // acquires a token before the first search
	Open    func(url string) error
	Logger  *log.Logger
}

type modal struct {
	title string
	body  string
	isErr bool
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	deps   Deps
	logger *log.Logger
	view   ViewState
	focus  focus
	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	tracker *tasks.Tracker
	status  string

	recentList list.Model
	artistList list.Model
	searchErr  string

	artist      *models.Artist
	section     section
	trackList   list.Model
	albumList   list.Model
	tracksState sectionState
	albumsState sectionState
	tracksErr   string
	albumsErr   string

	previewErrs chan error
	modal       *modal
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "Search for an artist..."
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Focus()

	m := &Model{
		ctx:         ctx,
		deps:        deps,
		logger:      logger,
		view:        IdleView,
		focus:       focusInput,
		input:       input,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
		keys:        newKeyMap(),
		tracker:     &tasks.Tracker{},
		recentList:  newList("Recent searches", nil, false),
		artistList:  newList("Artists", nil, false),
		trackList:   newList("Top Tracks", nil, true),
		albumList:   newList("Albums", nil, false),
		previewErrs: make(chan error, 4),
	}
	m.resize(80, 24)
	return m
}

// Init starts the cursor blink, the preview error listener, token warm-up and the recent search load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForPreviewError()}
	if m.deps.Warmup != nil {
		cmds = append(cmds, m.warmup())
	}
	cmds = append(cmds, m.loadRecent())
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the search bar, the results region (or the modal over it) and the key help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("artistx"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.modal != nil {
		b.WriteString(m.renderModal())
	} else {
		switch m.view {
		case IdleView:
			b.WriteString(m.renderIdle())
		case SearchingView:
			b.WriteString(m.renderSearching())
		case ArtistListView:
			b.WriteString(m.renderArtistList())
		case ArtistDetailView:
			b.WriteString(m.renderDetail())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.helpKeys()))
	return b.String()
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgWarmup:
		if err, _ := msg.data.(error); err != nil {
			m.logger.Error("token warm-up failed", "error", err)
			m.showError("Authentication failed", err)
		}
		return m, nil

	case MsgRecent:
		queries, _ := msg.data.([]string)
		return m, m.recentList.SetItems(recentItems(queries))

	case MsgSearchDone:
		if !m.tracker.Current(msg.ticket) {
			m.logger.Debug("dropping stale search result", "ticket", msg.ticket)
			return m, nil
		}
		return m.searchDone(msg.data.(searchResult))

	case MsgTracksLoaded:
		if !m.tracker.Current(msg.ticket) {
			m.logger.Debug("dropping stale tracks", "ticket", msg.ticket)
			return m, nil
		}
		res := msg.data.(tracksResult)
		if res.err != nil {
			m.tracksState = sectionFailed
			m.tracksErr = formatter.TracksFailed(res.err)
			m.maybeAuthModal(res.err)
			return m, nil
		}
		m.tracksState = sectionReady
		return m, m.trackList.SetItems(trackItems(res.tracks))

	case MsgAlbumsLoaded:
		if !m.tracker.Current(msg.ticket) {
			m.logger.Debug("dropping stale albums", "ticket", msg.ticket)
			return m, nil
		}
		res := msg.data.(albumsResult)
		if res.err != nil {
			m.albumsState = sectionFailed
			m.albumsErr = formatter.AlbumsFailed(res.err)
			m.maybeAuthModal(res.err)
			return m, nil
		}
		m.albumsState = sectionReady
		return m, m.albumList.SetItems(albumItems(res.albums))

	case MsgProgressUpdate:
		if !m.tracker.Current(msg.ticket) {
			return m, nil
		}
		update := msg.data.(progressEnvelope)
		m.status = update.ProgressUpdate.Message
		return m, m.waitForProgress(msg.ticket, update.ch)

	case MsgPreviewFailed:
		err, _ := msg.data.(error)
		m.logger.Error("preview failed", "error", err)
		m.showError("Preview failed", err)
		return m, m.waitForPreviewError()

	case MsgOpenFailed:
		err, _ := msg.data.(error)
		m.showError("Could not open link", err)
		return m, nil
	}
	return m, nil
}

func (m *Model) searchDone(res searchResult) (tea.Model, tea.Cmd) {
	m.status = ""
	m.view = ArtistListView
	m.focus = focusResults
	m.input.Blur()

	if res.err != nil {
		m.logger.Error("search failed", "query", res.query, "error", res.err)
		m.searchErr = formatter.SearchFailed(res.err)
		m.maybeAuthModal(res.err)
		return m, m.artistList.SetItems(nil)
	}

	m.logger.Info("search complete", "query", res.query, "results", len(res.artists))
	m.searchErr = ""
	m.artistList.Select(0)
	return m, tea.Batch(m.artistList.SetItems(artistItems(res.artists)), m.loadRecent())
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		switch msg.String() {
		case "enter", "esc", "q", " ":
			m.modal = nil
		}
		return m, nil
	}

	if m.focus == focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc, tea.KeyTab:
			m.blurInput()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		return m, m.focusInput()
	}

	switch m.view {
	case IdleView:
		return m.handleIdleKeys(msg)
	case SearchingView:
		if key.Matches(msg, m.keys.back) {
			m.tracker.Cancel()
			m.view = IdleView
			m.status = ""
		}
		return m, nil
	case ArtistListView:
		return m.handleArtistListKeys(msg)
	case ArtistDetailView:
		return m.handleDetailKeys(msg)
	}
	return m, nil
}

func (m *Model) handleIdleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.recentList.SelectedItem().(recentItem); ok {
			m.input.SetValue(string(item))
			return m.startSearch(string(item))
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		return m, m.focusInput()
	}

	var cmd tea.Cmd
	m.recentList, cmd = m.recentList.Update(msg)
	return m, cmd
}

func (m *Model) handleArtistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.artistList.SelectedItem().(artistItem)

	switch {
	case key.Matches(msg, m.keys.enter):
		if hasSelection {
			return m.openArtist(selected.artist)
		}
		return m, nil
	case key.Matches(msg, m.keys.open), key.Matches(msg, m.keys.artist):
		if hasSelection {
			return m, m.openURL(selected.artist.ExternalURL)
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		return m, m.focusInput()
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.tracker.Cancel()
		m.clearDetail()
		m.view = ArtistListView
		return m, nil

	case key.Matches(msg, m.keys.tab):
		if m.section == tracksSection {
			m.section = albumsSection
		} else {
			m.section = tracksSection
		}
		return m, nil

	case key.Matches(msg, m.keys.artist):
		return m, m.openURL(m.artist.ExternalURL)

	case key.Matches(msg, m.keys.stop):
		if m.deps.Player != nil {
			if err := m.deps.Player.Stop(); err != nil {
				m.showError("Preview failed", err)
			}
		}
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.open):
		if m.section == tracksSection {
			if item, ok := m.trackList.SelectedItem().(trackItem); ok {
				return m, m.openURL(item.track.ExternalURL)
			}
		} else if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			return m, m.openURL(item.album.ExternalURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if m.section == tracksSection {
			if item, ok := m.trackList.SelectedItem().(trackItem); ok {
				return m, m.playPreview(item.track)
			}
		} else if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			return m, m.openURL(item.album.ExternalURL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.section == tracksSection {
		m.trackList, cmd = m.trackList.Update(msg)
	} else {
		m.albumList, cmd = m.albumList.Update(msg)
	}
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.modal = &modal{title: "Search", body: formatter.EmptyQuery}
		return m, nil
	}
	return m.startSearch(query)
}

// startSearch clears the results region and runs the search under a new generation.
func (m *Model) startSearch(query string) (tea.Model, tea.Cmd) {
	ctx, ticket := m.tracker.Begin(m.ctx)

	m.view = SearchingView
	m.searchErr = ""
	m.status = ""
	m.clearDetail()
	m.artistList.SetItems(nil)
	m.blurInput()

	progress := make(chan tasks.ProgressUpdate, 8)
	return m, tea.Batch(
		m.search(ctx, ticket, query, progress),
		m.waitForProgress(ticket, progress),
		m.spinner.Tick,
	)
}

// openArtist clears the detail region and fetches both sections under a new generation.
func (m *Model) openArtist(artist models.Artist) (tea.Model, tea.Cmd) {
	ctx, ticket := m.tracker.Begin(m.ctx)

	m.clearDetail()
	m.view = ArtistDetailView
	m.artist = &artist
	m.logger.Info("opening artist", "id", artist.ID, "name", artist.Name)

	return m, tea.Batch(
		m.fetchTracks(ctx, ticket, artist),
		m.fetchAlbums(ctx, ticket, artist),
		m.record(func(h repositories.Recorder) error { return h.RecordArtistView(artist) }),
		m.spinner.Tick,
	)
}

func (m *Model) playPreview(track models.Track) tea.Cmd {
	if !track.HasPreview() || m.deps.Player == nil {
		return nil
	}

	m.status = "▶ " + track.Name
	m.logger.Info("playing preview", "track", track.Name)
	m.deps.Player.Play(m.ctx, track.PreviewURL, m.onPreviewError)
	return m.record(func(h repositories.Recorder) error { return h.RecordPreviewPlay(track) })
}

func (m *Model) onPreviewError(err error) {
	select {
	case m.previewErrs <- err:
	default:
		m.logger.Warn("dropping preview error", "error", err)
	}
}

func (m *Model) clearDetail() {
	m.artist = nil
	m.section = tracksSection
	m.tracksState = sectionLoading
	m.albumsState = sectionLoading
	m.tracksErr = ""
	m.albumsErr = ""
	m.trackList.SetItems(nil)
	m.albumList.SetItems(nil)
	m.trackList.Select(0)
	m.albumList.Select(0)
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) blurInput() {
	m.focus = focusResults
	m.input.Blur()
}

func (m *Model) showError(title string, err error) {
	if err == nil {
		return
	}
	m.modal = &modal{title: title, body: err.Error(), isErr: true}
}

// maybeAuthModal opens a modal for credential and token failures, which inline text can't fix.
func (m *Model) maybeAuthModal(err error) {
	if errors.Is(err, shared.ErrMissingCredentials) || errors.Is(err, shared.ErrAuthFailed) {
		m.showError("Authentication failed", err)
	}
}

func (m *Model) loading() bool {
	switch m.view {
	case SearchingView:
		return true
	case ArtistDetailView:
		return m.tracksState == sectionLoading || m.albumsState == sectionLoading
	}
	return false
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 10)

	region := max(height-8, 4)
	m.recentList.SetSize(width-4, region)
	m.artistList.SetSize(width-4, region)

	half := max((region-6)/2, 3)
	m.trackList.SetSize(width-4, half)
	m.albumList.SetSize(width-4, half)
}

func (m *Model) helpKeys() []key.Binding {
	if m.modal != nil {
		return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/esc", "dismiss"))}
	}
	if m.focus == focusInput {
		submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
		return []key.Binding{submit, m.keys.back}
	}

	switch m.view {
	case ArtistListView:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.open, m.keys.search, m.keys.quit}
	case ArtistDetailView:
		return []key.Binding{m.keys.enter, m.keys.tab, m.keys.open, m.keys.artist, m.keys.stop, m.keys.back, m.keys.quit}
	case SearchingView:
		return []key.Binding{m.keys.back, m.keys.quit}
	}
	return m.keys.ShortHelp()
}

func (m *Model) renderModal() string {
	title := styles.title.Render(m.modal.title)
	body := m.modal.body
	if m.modal.isErr {
		body = styles.err.Render(body)
	}
	return styles.modal.Render(fmt.Sprintf("%s\n%s", title, body))
}

func (m *Model) renderIdle() string {
	if len(m.recentList.Items()) == 0 {
		return styles.help.Render("Type an artist name and press enter.")
	}
	return m.recentList.View()
}

func (m *Model) renderSearching() string {
	line := fmt.Sprintf("%s Searching...", m.spinner.View())
	if m.status != "" {
		line += "\n" + styles.help.Render(m.status)
	}
	return line
}

func (m *Model) renderArtistList() string {
	if m.searchErr != "" {
		return styles.err.Render(m.searchErr)
	}
	if len(m.artistList.Items()) == 0 {
		return styles.warn.Render(formatter.NoArtists)
	}
	return m.artistList.View()
}

func (m *Model) renderDetail() string {
	if m.artist == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ok.Render(m.artist.Name))
	b.WriteString("\n")
	b.WriteString(formatter.ArtistMeta(*m.artist))
	b.WriteString("\n")
	b.WriteString(styles.help.Render("[a] open artist"))
	b.WriteString("\n\n")

	b.WriteString(m.sectionHeader("Top Tracks", tracksSection))
	b.WriteString(m.sectionBody(m.tracksState, m.tracksErr, formatter.NoTracks, m.trackList))
	b.WriteString("\n\n")
	b.WriteString(m.sectionHeader("Albums", albumsSection))
	b.WriteString(m.sectionBody(m.albumsState, m.albumsErr, formatter.NoAlbums, m.albumList))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ok.Render(m.status))
	}
	return b.String()
}

func (m *Model) sectionHeader(name string, s section) string {
	if m.section == s {
		return styles.title.Render("› "+name) + "\n"
	}
	return styles.help.Render("  "+name) + "\n\n"
}

func (m *Model) sectionBody(state sectionState, errText, emptyText string, l list.Model) string {
	switch state {
	case sectionLoading:
		return fmt.Sprintf("%s Loading...", m.spinner.View())
	case sectionFailed:
		return styles.err.Render(errText)
	}
	if len(l.Items()) == 0 {
		return styles.warn.Render(emptyText)
	}
	return l.View()
}
