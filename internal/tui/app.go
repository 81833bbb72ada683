package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gifgrid/internal/debounce"
	"github.com/mmcdole/gifgrid/internal/domain"
	"github.com/mmcdole/gifgrid/internal/search"
	"github.com/mmcdole/gifgrid/internal/tui/components"
	"github.com/mmcdole/gifgrid/internal/urlsync"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Focus identifies which component receives keys
type Focus int

const (
	FocusSearch Focus = iota
	FocusGrid
)

const (
	SpinnerInterval = 100 * time.Millisecond
	StatusTimeout   = 3 * time.Second
)

// Options configures a Model
type Options struct {
	Client     domain.SearchClient
	Controller *search.Controller
	Debounce   time.Duration
	Timeout    time.Duration // per-request timeout, 0 = none

	Location  domain.Location     // nil disables link sync
	History   domain.HistoryStore // nil disables suggestions
	Opener    domain.Opener       // nil disables opening gifs
	Clipboard func(string) error  // nil uses the system clipboard

	TileWidth   int
	GridColumns int

	// Seed the first search from a saved link
	InitialTerm string
	InitialPage int

	TimerFunc debounce.TimerFunc // nil uses real timers
	Logger    *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Focus Focus
	Ready bool

	// Search pipeline (shared between model copies)
	Controller *search.Controller
	Client     domain.SearchClient
	Gate       *debounce.Gate[string]
	Due        *DueNotifier
	Sync       *urlsync.Sync
	History    domain.HistoryStore
	Opener     domain.Opener

	// UI Components
	SearchBar components.SearchBar
	Grid      components.Grid

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	copyFn  func(string) error
	timeout time.Duration
	logger  *slog.Logger

	// Request issued while seeding, started by Init
	pending *search.Request
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = search.NewController(12, nil, logger)
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	due := NewDueNotifier()
	m := Model{
		State:      StateBrowsing,
		Focus:      FocusSearch,
		Controller: ctrl,
		Client:     opts.Client,
		Gate:       debounce.New(opts.Debounce, due.Notify, debounce.WithTimerFunc(opts.TimerFunc)),
		Due:        due,
		History:    opts.History,
		Opener:     opts.Opener,
		SearchBar:  components.NewSearchBar(),
		Grid:       components.NewGrid(opts.TileWidth, opts.GridColumns),
		copyFn:     copyFn,
		timeout:    opts.Timeout,
		logger:     logger,
	}
	if opts.Location != nil {
		m.Sync = urlsync.New(opts.Location)
	}

	m.SearchBar.Focus()
	m.refreshRecent()

	if opts.InitialTerm != "" {
		m.SearchBar.SetValue(opts.InitialTerm)
		if req, ok := ctrl.Restore(opts.InitialTerm, opts.InitialPage); ok {
			m.pending = &req
			m.Focus = FocusGrid
			m.SearchBar.Blur()
			m.Grid.SetFocused(true)
		}
	}
	m.syncGrid(true)

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		ListenDueCmd(m.Due),
		TickCmd(SpinnerInterval),
		textinput.Blink,
	}
	if m.pending != nil {
		cmds = append(cmds, m.searchCmd(*m.pending))
	}
	return tea.Batch(cmds...)
}

// Shutdown stops the debounce gate so no search fires after exit
func (m Model) Shutdown() {
	m.Gate.Stop()
	m.Due.Close()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SearchDueMsg:
		cmds := []tea.Cmd{ListenDueCmd(m.Due)}
		if req, ok := m.Controller.Commit(msg.Term); ok {
			cmds = append(cmds, m.searchCmd(req))
			m.syncGrid(false)
		}
		return m, tea.Batch(cmds...)

	case SearchResultMsg:
		return m.handleSearchResult(msg.Response)

	case TickMsg:
		m.SpinnerFrame++
		if m.Controller.Loading() {
			_, placeholders := visibleResults(m.Controller.State())
			m.Grid.SetPlaceholders(placeholders, m.SpinnerFrame)
		}
		return m, TickCmd(SpinnerInterval)

	case OpenedMsg:
		return m.setStatus("Opened "+msg.Title, false)

	case CopiedMsg:
		return m.setStatus("Copied "+msg.What, false)

	case ErrMsg:
		m.logger.Error("action failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
	return m, cmd
}

// handleSearchResult applies a response and mirrors the outcome into the UI
func (m Model) handleSearchResult(resp search.Response) (tea.Model, tea.Cmd) {
	req := resp.Request
	replaced := req.IsFirstPage() || len(m.Grid.Items()) == 0

	if !m.Controller.Apply(resp) {
		return m, nil
	}

	state := m.Controller.State()
	if resp.Err == nil {
		m.writeLocation(state.Committed, state.Cursor.Page)
		if replaced && len(state.Items) > 0 {
			m.rememberTerm(state.Committed)
		}
	}
	m.syncGrid(replaced)
	return m, nil
}

// onTermChange forwards a typed term to the controller and the debounce gate
func (m *Model) onTermChange(term string) {
	if m.Controller.OnTermChange(term) {
		m.Gate.Trigger(term)
		return
	}
	m.Gate.Cancel()
	m.writeLocation("", 1)
	m.syncGrid(true)
}

// submit searches for the current term immediately
func (m *Model) submit() tea.Cmd {
	m.Gate.Cancel()
	req, ok := m.Controller.Commit(m.SearchBar.Value())
	if !ok {
		return nil
	}
	m.syncGrid(false)
	return m.searchCmd(req)
}

// loadMore requests the next window of the committed term
func (m *Model) loadMore() tea.Cmd {
	req, ok := m.Controller.LoadMore()
	if !ok {
		return nil
	}
	m.syncGrid(false)
	return m.searchCmd(req)
}

func (m Model) searchCmd(req search.Request) tea.Cmd {
	return SearchCmd(m.Client, req, m.timeout)
}

// syncGrid pushes the controller state into the grid
func (m *Model) syncGrid(reset bool) {
	state := m.Controller.State()
	items, placeholders := visibleResults(state)
	if len(items) == 0 {
		reset = true
	}
	m.Grid.SetItems(items, reset)
	m.Grid.SetPlaceholders(placeholders, m.SpinnerFrame)
	m.Grid.SetEmptyNotice(emptyNotice(state))
}

// visibleResults decides what the grid shows for a controller snapshot.
// A request that will replace the list hides the current one behind
// placeholders; a load more keeps it and appends placeholders.
func visibleResults(s search.State) ([]domain.Gif, int) {
	if !s.Loading {
		return s.Items, 0
	}
	if s.Inflight != nil && (s.Inflight.IsFirstPage() || s.Inflight.Term != s.Committed) {
		return nil, s.PageSize
	}
	return s.Items, s.PageSize
}

// emptyNotice returns the grid text for an empty, idle result list
func emptyNotice(s search.State) string {
	switch {
	case s.Loading, s.Err != "":
		return ""
	case s.Committed == "":
		return "Start typing to search GIPHY"
	default:
		return fmt.Sprintf("No GIFs found for %q", s.Committed)
	}
}

// controlState is how the load more control renders
type controlState int

const (
	controlHidden controlState = iota
	controlEnabled
	controlDisabled
)

func loadMoreControl(s search.State) controlState {
	switch {
	case !s.HasMore:
		return controlHidden
	case s.Loading:
		return controlDisabled
	case !s.CanLoadMore():
		return controlHidden
	default:
		return controlEnabled
	}
}

// writeLocation mirrors the committed term and page into the link
func (m Model) writeLocation(term string, page int) {
	if m.Sync != nil {
		m.Sync.Write(term, page)
	}
}

// ShareLink returns the link for the current results
func (m Model) ShareLink() string {
	state := m.Controller.State()
	return urlsync.Link(state.Committed, state.Cursor.Page)
}

func (m *Model) rememberTerm(term string) {
	if m.History == nil {
		return
	}
	if err := m.History.AddRecentTerm(term); err != nil {
		m.logger.Warn("failed to save recent term", "term", term, "error", err)
		return
	}
	m.refreshRecent()
}

func (m *Model) refreshRecent() {
	if m.History != nil {
		m.SearchBar.SetRecent(m.History.RecentTerms())
	}
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	var cmd tea.Cmd
	if f == FocusSearch {
		cmd = m.SearchBar.Focus()
		m.Grid.SetFocused(false)
	} else {
		m.SearchBar.Blur()
		m.Grid.SetFocused(true)
	}
	m.updateLayout()
	return cmd
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(StatusTimeout)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Shutdown()
	return m, tea.Quit
}
