// Package tui implements the interactive console: one tab per page, each
// with its selection chain, its editable fields and its data panel.
package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ViewState is what the console is currently showing.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

// Keys.
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyTab       = "tab"
	keyShiftTab  = "shift+tab"
	keyUp        = "up"
	keyDown      = "down"
	keyCtrlS     = "ctrl+s"
	keyReload    = "r"
	keyNextPage  = "]"
	keyPrevPage  = "["
	keyClearNote = "x"
)

// Layout.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
	chromeHeight  = 14
	pickerHeight  = 10
	inputWidth    = 40
)

// IsTTY reports whether stdin and stdout are both terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// LoadingState wraps the spinner shown while requests are in flight.
type LoadingState struct {
	spinner spinner.Model
}

// NewLoadingState returns a ready spinner.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the current spinner frame.
func (l *LoadingState) View() string {
	return l.spinner.View()
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = inputWidth
	return ti
}
