package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/backend"
	"github.com/atomicstack/tmux-popup-grid/internal/catalog"
	"github.com/atomicstack/tmux-popup-grid/internal/data/dispatcher"
	"github.com/atomicstack/tmux-popup-grid/internal/display"
	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
	"github.com/atomicstack/tmux-popup-grid/internal/permission"
	"github.com/atomicstack/tmux-popup-grid/internal/router"
	"github.com/atomicstack/tmux-popup-grid/internal/session"
	"github.com/atomicstack/tmux-popup-grid/internal/state"
	"github.com/atomicstack/tmux-popup-grid/internal/theme"
	"github.com/atomicstack/tmux-popup-grid/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-grid/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Viewer       string
	Unrestricted bool
	// RootMenu names a catalog menu to open instead of the session grid.
	RootMenu    string
	CatalogPath string
	Oracle      permission.Oracle
	Watcher     *backend.Watcher
}

// Model implements the Bubble Tea model for the tmux popup grid.
type Model struct {
	viewer       string
	unrestricted bool
	socketPath   string
	rootMenuID   string

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	display  *display.Memory
	sessions *session.Manager
	router   *router.Router
	oracle   permission.Oracle
	catalog  *catalog.Catalog
	root     *menu.Definition
	sortDesc bool

	store        state.SessionStore
	catalogState state.CatalogStore
	dispatcher   *dispatcher.Dispatcher
	backend      *backend.Watcher
	backendState map[backend.Kind]error

	bus          *command.Bus
	cursor       uistate.SlotCursor
	prompt       uistate.Prompt
	promptCursor cursor.Model
	cursorDirty  bool
	blink        bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	denials    int
	quitting   bool
	quitSent   bool
	inflight   int

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the session grid, loads the catalog when one is configured
// and opens the first menu.
func NewModel(opts Options) (*Model, error) {
	viewer := opts.Viewer
	if viewer == "" {
		viewer = "local"
	}
	oracle := opts.Oracle
	if oracle == nil {
		oracle = permission.NewStatic()
	}
	mem := display.NewMemory()
	store := state.NewSessionStore()
	catalogState := state.NewCatalogStore()
	m := &Model{
		viewer:       viewer,
		unrestricted: opts.Unrestricted,
		socketPath:   opts.SocketPath,
		rootMenuID:   opts.RootMenu,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		display:      mem,
		sessions:     session.NewManager(mem, theme.Decorations{}),
		oracle:       oracle,
		store:        store,
		catalogState: catalogState,
		dispatcher:   dispatcher.New(store, catalogState),
		backend:      opts.Watcher,
		backendState: map[backend.Kind]error{},
		bus:          command.New(),
		blink:        true,
	}
	m.router = router.New(m.sessions, oracle, statusFeedback{m: m})
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	if opts.CatalogPath != "" {
		c, err := catalog.Load(opts.CatalogPath, m)
		if err != nil {
			return nil, err
		}
		m.catalog = c
	}
	if err := m.rebuildRoot(); err != nil {
		return nil, err
	}
	if err := m.openInitial(); err != nil {
		return nil, err
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.promptCursor = c
	m.registerHandlers()
	return m, nil
}

func (m *Model) openInitial() error {
	if m.rootMenuID == "" || m.rootMenuID == menu.RootID {
		_, err := m.sessions.Open(m.viewer, m.root)
		return err
	}
	def, ok := m.findMenu(m.rootMenuID)
	if !ok {
		return fmt.Errorf("root menu %q: %w", m.rootMenuID, catalog.ErrUnknownMenu)
	}
	_, err := m.sessions.Open(m.viewer, def)
	return err
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.promptCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updatePromptCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
		reflect.TypeOf(command.Results{}):   m.handleCommandResultsMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate drains queued tmux work and quits once the menu is closed and
// nothing is left in flight.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if cmd := m.bus.Drain(); cmd != nil {
		m.inflight++
		cmds = append(cmds, cmd)
	}
	if m.cursorDirty {
		m.cursorDirty = false
		if m.blink {
			m.promptCursor.Blink = false
			if cmd := m.promptCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if m.quitting && m.inflight == 0 && !m.quitSent {
		m.quitSent = true
		events.App.Exit("menu closed")
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Viewer returns the identity clicks are routed for.
func (m *Model) Viewer() string { return m.viewer }

// Display returns the grid store the model renders from.
func (m *Model) Display() *display.Memory { return m.display }

// Session returns the viewer's open menu session.
func (m *Model) Session() (*session.Session, bool) {
	return m.sessions.Lookup(m.viewer)
}

// Quitting reports whether the viewer closed the popup.
func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
