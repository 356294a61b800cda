package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// Page names in tab order.
const (
	PageChargers      = "chargers"
	PageConnectors    = "connectors"
	PageTariffs       = "tariffs"
	PageReports       = "reports"
	PageUsers         = "users"
	PageOrganizations = "organizations"
)

// ErrUnknownPage is returned for a start page that does not exist.
var ErrUnknownPage = errors.New("unknown page")

// PageNames returns the page names in tab order.
func PageNames() []string {
	return []string{PageChargers, PageConnectors, PageTariffs, PageReports, PageUsers, PageOrganizations}
}

func newPage(name string, env pages.Env) pages.Page {
	switch name {
	case PageChargers:
		return pages.NewChargers(env)
	case PageConnectors:
		return pages.NewConnectors(env)
	case PageTariffs:
		return pages.NewTariffs(env)
	case PageReports:
		return pages.NewReports(env)
	case PageUsers:
		return pages.NewUsers(env)
	case PageOrganizations:
		return pages.NewOrganizations(env)
	default:
		return nil
	}
}

const helpLine = "tab/↑↓ move · enter pick/edit · ctrl+s save · r reload · [ ] switch page · x dismiss · q quit"

// AppModel is the console: a tab per page and a notification line.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	ctx     context.Context
	state   ViewState
	pages   []PageModel
	active  int
	notes   *notify.Recorder
	initCmd tea.Cmd

	loadingState *LoadingState

	width  int
	height int
}

// NewApp builds the console and opens the start page. Page notifications
// are collected by the console instead of env's notifier, and saves
// refresh what the console shows.
func NewApp(ctx context.Context, env pages.Env, start string) (AppModel, error) {
	if start == "" {
		start = PageChargers
	}
	notes := &notify.Recorder{}
	env.Notifier = notes
	env.Headless = false

	m := AppModel{
		ctx:          ctx,
		state:        ViewStateList,
		notes:        notes,
		active:       -1,
		loadingState: NewLoadingState(),
		width:        defaultWidth,
		height:       defaultHeight,
	}
	for i, name := range PageNames() {
		m.pages = append(m.pages, NewPageModel(ctx, newPage(name, env), notes, env.Localizer))
		if name == start {
			m.active = i
		}
	}
	if m.active < 0 {
		return AppModel{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPage, start, strings.Join(PageNames(), ", "))
	}

	m.pages[m.active], m.initCmd = m.pages[m.active].Open()
	return m, nil
}

// Init starts the spinner and the start page's requests (Bubble Tea interface).
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadingState.Init(), m.initCmd)
}

// Active returns the active page.
func (m AppModel) Active() PageModel { return m.pages[m.active] }

// Notifications returns every notification shown so far.
func (m AppModel) Notifications() []notify.Notification { return m.notes.All() }

// State returns the view state.
func (m AppModel) State() ViewState { return m.state }

// Update handles messages and updates the model state (Bubble Tea interface).
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.pages {
			m.pages[i], _ = m.pages[i].Update(msg)
		}
		return m, nil
	case OptionsLoadedMsg:
		return m.route(msg.Page, msg)
	case TaskDoneMsg:
		return m.route(msg.Page, msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.loadingState.Update(msg)
}

// route delivers a page's own message to it, active or not.
func (m AppModel) route(name string, msg tea.Msg) (tea.Model, tea.Cmd) {
	for i := range m.pages {
		if m.pages[i].Page().Name() == name {
			var cmd tea.Cmd
			m.pages[i], cmd = m.pages[i].Update(msg)
			return m, cmd
		}
	}
	logging.FromContext(m.ctx).Warn().
		Ctx(m.ctx).
		Str("component", "tui").
		Str("page", name).
		Msg("message for unknown page dropped")
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	active := m.pages[m.active]
	if !active.Editing() {
		switch msg.String() {
		case keyQuit:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyNextPage:
			return m.switchTo((m.active + 1) % len(m.pages))
		case keyPrevPage:
			return m.switchTo((m.active - 1 + len(m.pages)) % len(m.pages))
		case keyClearNote:
			m.notes.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.pages[m.active], cmd = active.Update(msg)
	return m, cmd
}

// switchTo activates page i, opening it on first use.
func (m AppModel) switchTo(i int) (tea.Model, tea.Cmd) {
	m.active = i
	var cmd tea.Cmd
	m.pages[i], cmd = m.pages[i].Open()
	return m, cmd
}

// View renders the current view (Bubble Tea interface).
func (m AppModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		m.pages[m.active].View(m.loadingState.View()),
		"",
		m.renderNotification(),
		SubtleStyle.Render(helpLine),
	)
}

func (m AppModel) renderTabs() string {
	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		title := p.Page().Name()
		if p.Busy() {
			title += " " + m.loadingState.View()
		}
		if i == m.active {
			tabs[i] = ActiveTabStyle.Render(title)
		} else {
			tabs[i] = InactiveTabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) renderNotification() string {
	n, ok := m.notes.Last()
	if !ok {
		return ""
	}
	return NotificationStyle(n.Kind).Render(n.String())
}
