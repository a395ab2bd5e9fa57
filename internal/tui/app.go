package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmelton/quill/internal/domain"
	"github.com/dmelton/quill/internal/reader"
	"github.com/dmelton/quill/internal/search"
	"github.com/dmelton/quill/internal/sync"
	"github.com/dmelton/quill/internal/tui/styles"
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Reader  *reader.Service
	Sync    *sync.Orchestrator
	Updates *Updates

	// UI components
	Keys        KeyMap
	Spinner     spinner.Model
	FilterInput textinput.Model
	JumpInput   textinput.Model

	// Data: the full authoritative collection plus the derived visible view
	Articles []domain.Article
	Visible  []domain.Article
	Feeds    []domain.Feed

	// View state
	Cursor      int
	Offset      int
	FeedIndex   int // -1 = all feeds
	UnreadOnly  bool
	Filtering   bool
	Jumping     bool
	FilterQuery string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SyncInterval time.Duration
}

// NewModel creates the application model. syncInterval <= 0 disables the
// background sync.
func NewModel(readerSvc *reader.Service, orch *sync.Orchestrator, updates *Updates, syncInterval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	fi := textinput.New()
	fi.Placeholder = "filter articles"
	fi.Prompt = "/"
	fi.CharLimit = 80

	ji := textinput.New()
	ji.Placeholder = "feed name"
	ji.Prompt = "feed: "
	ji.CharLimit = 80

	m := Model{
		Reader:       readerSvc,
		Sync:         orch,
		Updates:      updates,
		Keys:         DefaultKeyMap(),
		Spinner:      sp,
		FilterInput:  fi,
		JumpInput:    ji,
		FeedIndex:    -1,
		SyncInterval: syncInterval,
	}

	// Render instantly from the local cache; server truth arrives right
	// after through the initial load and the startup sync.
	if cached, ok := readerSvc.CachedArticles(); ok {
		m.Articles = cached
	}
	if cached, ok := readerSvc.CachedFeeds(); ok {
		m.Feeds = cached
	}
	m.applyFilter()

	return m
}

// Init starts the initial loads, the orchestrator bridges, and the startup
// background sync.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.Spinner.Tick,
		LoadFeedsCmd(m.Reader),
		LoadArticlesCmd(m.Reader, domain.ArticleFilter{}),
		WaitForArticlesCmd(m.Updates),
		WaitForRefreshCmd(m.Updates),
		SyncCmd(m.Sync, false),
	}
	if m.SyncInterval > 0 {
		cmds = append(cmds, SyncTickCmd(m.SyncInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ArticlesLoadedMsg:
		m.Articles = msg.Articles
		m.applyFilter()
		return m, nil

	case ArticlesReplacedMsg:
		m.Articles = msg.Articles
		m.applyFilter()
		return m, WaitForArticlesCmd(m.Updates)

	case RefreshVisibleMsg:
		return m, tea.Batch(
			WaitForRefreshCmd(m.Updates),
			LoadArticlesCmd(m.Reader, domain.ArticleFilter{}),
		)

	case FeedsLoadedMsg:
		m.Feeds = msg.Feeds
		if m.FeedIndex >= len(m.Feeds) {
			m.FeedIndex = -1
			m.applyFilter()
		}
		return m, nil

	case SyncFinishedMsg:
		m.StatusMsg = "sync complete"
		m.StatusIsErr = false
		return m, LoadFeedsCmd(m.Reader)

	case SyncTickMsg:
		cmds := []tea.Cmd{SyncTickCmd(m.SyncInterval)}
		if !m.Sync.Syncing() {
			cmds = append(cmds, SyncCmd(m.Sync, false))
		}
		return m, tea.Batch(cmds...)

	case ArticleStateChangedMsg, OpenedMsg:
		if cached, ok := m.Reader.CachedArticles(); ok {
			m.Articles = cached
			m.applyFilter()
		}
		return m, nil

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Filtering {
		return m.handleFilterKey(msg)
	}
	if m.Jumping {
		return m.handleJumpKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.Keys.Top):
		m.Cursor = 0
		m.clampScroll()

	case key.Matches(msg, m.Keys.Bottom):
		m.Cursor = len(m.Visible) - 1
		m.clampScroll()

	case key.Matches(msg, m.Keys.Open):
		if a, ok := m.selected(); ok {
			return m, OpenInBrowserCmd(m.Reader, a)
		}

	case key.Matches(msg, m.Keys.ToggleRead):
		if a, ok := m.selected(); ok {
			return m, MarkReadCmd(m.Reader, a.ID, !a.Read)
		}

	case key.Matches(msg, m.Keys.ToggleStar):
		if a, ok := m.selected(); ok {
			return m, ToggleStarCmd(m.Reader, a.ID, !a.Starred)
		}

	case key.Matches(msg, m.Keys.UnreadOnly):
		m.UnreadOnly = !m.UnreadOnly
		m.applyFilter()

	case key.Matches(msg, m.Keys.NextFeed):
		m.cycleFeed(1)

	case key.Matches(msg, m.Keys.PrevFeed):
		m.cycleFeed(-1)

	case key.Matches(msg, m.Keys.JumpFeed):
		m.Jumping = true
		m.JumpInput.SetValue("")
		m.JumpInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.Filter):
		m.Filtering = true
		m.FilterInput.SetValue(m.FilterQuery)
		m.FilterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.Keys.Escape):
		if m.FilterQuery != "" {
			m.FilterQuery = ""
			m.applyFilter()
		}

	case key.Matches(msg, m.Keys.Sync):
		if m.Sync.Syncing() {
			m.StatusMsg = "sync already running"
			m.StatusIsErr = false
			return m, nil
		}
		m.StatusMsg = ""
		return m, SyncCmd(m.Sync, true)

	case key.Matches(msg, m.Keys.SyncBg):
		if m.Sync.Syncing() {
			return m, nil
		}
		return m, SyncCmd(m.Sync, false)
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Escape):
		m.Filtering = false
		m.FilterQuery = ""
		m.FilterInput.Blur()
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.Keys.Open) && msg.String() == "enter":
		m.Filtering = false
		m.FilterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.FilterQuery = m.FilterInput.Value()
	m.applyFilter()
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Escape):
		m.Jumping = false
		m.JumpInput.Blur()
		return m, nil

	case msg.String() == "enter":
		m.Jumping = false
		m.JumpInput.Blur()
		m.jumpToFeed(m.JumpInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.JumpInput, cmd = m.JumpInput.Update(msg)
	return m, cmd
}

// jumpToFeed selects the feed whose title best matches query. An empty
// query or no match leaves the current selection alone.
func (m *Model) jumpToFeed(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	ranked := search.RankFeeds(query, m.Feeds)
	if len(ranked) == 0 {
		m.StatusMsg = "no feed matches " + strconv.Quote(query)
		m.StatusIsErr = false
		return
	}
	for i, f := range m.Feeds {
		if f.ID == ranked[0].ID {
			m.FeedIndex = i
			break
		}
	}
	m.applyFilter()
}

// selected returns the article under the cursor
func (m Model) selected() (domain.Article, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return domain.Article{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampScroll()
}

func (m *Model) cycleFeed(delta int) {
	if len(m.Feeds) == 0 {
		return
	}
	m.FeedIndex += delta
	if m.FeedIndex >= len(m.Feeds) {
		m.FeedIndex = -1
	}
	if m.FeedIndex < -1 {
		m.FeedIndex = len(m.Feeds) - 1
	}
	m.applyFilter()
}

// applyFilter derives the visible view from the full collection: feed
// selection, unread toggle, then fuzzy filter.
func (m *Model) applyFilter() {
	visible := make([]domain.Article, 0, len(m.Articles))
	var feedID string
	if m.FeedIndex >= 0 && m.FeedIndex < len(m.Feeds) {
		feedID = m.Feeds[m.FeedIndex].ID
	}
	for _, a := range m.Articles {
		if feedID != "" && a.FeedID != feedID {
			continue
		}
		if m.UnreadOnly && a.Read {
			continue
		}
		visible = append(visible, a)
	}

	if m.FilterQuery != "" {
		results := search.FilterArticles(m.FilterQuery, visible)
		visible = visible[:0]
		for _, r := range results {
			visible = append(visible, r.Article)
		}
	}

	m.Visible = visible
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	rows := m.listHeight()
	if rows <= 0 {
		return
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+rows {
		m.Offset = m.Cursor - rows + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}
