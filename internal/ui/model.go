package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
	"github.com/atomicstack/menubar/internal/metrics"
	"github.com/atomicstack/menubar/internal/theme"
	"github.com/atomicstack/menubar/internal/ui/command"
)

var styles = theme.Default()

// Owner identifies what holds host focus.
type Owner int

const (
	// OwnerBar means the bar's roving node is focused.
	OwnerBar Owner = iota
	// OwnerContent means the region outside the bar is focused.
	OwnerContent
	// OwnerNone means a focus handoff is in flight.
	OwnerNone
)

func (o Owner) String() string {
	switch o {
	case OwnerBar:
		return "bar"
	case OwnerContent:
		return "content"
	default:
		return "none"
	}
}

const historyLimit = 5

type msgHandler func(tea.Msg) tea.Cmd

// RebuildFunc turns the bytes of a changed spec file into a new bar.
type RebuildFunc func(path string, data []byte) (*menubar.Bar, error)

// Options configures a Model.
type Options struct {
	Bar        *menubar.Bar
	Width      int
	Height     int
	ShowFooter bool
	BlurDelay  time.Duration
	Recorder   metrics.Recorder
	Watcher    *backend.Watcher
	Rebuild    RebuildFunc
}

// Model hosts a menu bar above a content region.
type Model struct {
	bar     *menubar.Bar
	monitor *menubar.Monitor
	owner   Owner

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	keys keyMap
	help help.Model

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	history    []string

	handlers map[reflect.Type]msgHandler

	bus      *command.Bus
	recorder metrics.Recorder
	watcher  *backend.Watcher
	rebuild  RebuildFunc
}

// NewModel initialises the UI around opts.Bar, with focus on the bar.
func NewModel(opts Options) *Model {
	m := &Model{
		bar:        opts.Bar,
		monitor:    menubar.NewMonitor(opts.Bar, opts.BlurDelay),
		owner:      OwnerBar,
		showFooter: opts.ShowFooter,
		keys:       defaultKeyMap(),
		help:       help.New(),
		bus:        command.New(),
		recorder:   opts.Recorder,
		watcher:    opts.Watcher,
		rebuild:    opts.Rebuild,
	}
	if m.recorder == nil {
		m.recorder = metrics.Nop{}
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Styles.ShortKey = *styles.Footer
	m.help.Styles.ShortDesc = *styles.Footer
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForReload(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menubar.Check{}):     m.handleCheckMsg,
		reflect.TypeOf(focusSettledMsg{}):   m.handleFocusSettledMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(reloadMsg{}):         m.handleReloadMsg,
		reflect.TypeOf(reloadDoneMsg{}):     m.handleReloadDoneMsg,
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

// Bar exposes the hosted bar.
func (m *Model) Bar() *menubar.Bar {
	return m.bar
}

// Owner reports what currently holds host focus.
func (m *Model) Owner() Owner {
	return m.owner
}

func (m *Model) setOwner(o Owner) {
	if m.owner == o {
		return
	}
	m.owner = o
	node := int(menubar.NoNode)
	if o == OwnerBar {
		node = int(m.bar.Roving())
	}
	events.Focus.Owner(o.String(), node)
}

func (m *Model) note(line string) {
	m.history = append(m.history, line)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

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

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	return nil
}
