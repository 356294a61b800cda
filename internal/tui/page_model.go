package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/pages"
	listview "github.com/ionenergy/ionctl/internal/tui/list"
)

// OptionsLoadedMsg carries the result of a cascade fetch of one page.
type OptionsLoadedMsg struct {
	Page   string
	Result cascade.Result
}

// TaskDoneMsg carries the on-loop half of a finished page task.
type TaskDoneMsg struct {
	Page  string
	Apply pages.Apply
}

// PageModel is one console page: the selection chain on top, the draft's
// fields below it and a submit button last. Network work runs in commands;
// page state only changes in Update.
//
//nolint:recvcheck // Bubble Tea components use value receivers for Update/View.
type PageModel struct {
	ctx       context.Context
	page      pages.Page
	notifier  notify.Notifier
	localizer *intl.Localizer

	// focus indexes levels, then fields, then the submit button.
	focus   int
	editing bool
	input   textinput.Model
	picker  *listview.Model[options.SelectOption]
	filter  textinput.Model
	// inflight counts commands whose message has not arrived yet.
	inflight int
	opened   bool
	width    int
	height   int
}

// NewPageModel wraps page. Notifications from field edits go to notifier.
func NewPageModel(ctx context.Context, page pages.Page, notifier notify.Notifier, loc *intl.Localizer) PageModel {
	if notifier == nil {
		notifier = notify.Discard
	}
	if loc == nil {
		loc = intl.New(intl.LocaleArabic)
	}
	return PageModel{
		ctx:       ctx,
		page:      page,
		notifier:  notifier,
		localizer: loc,
		input:     newTextInput(),
		filter:    newTextInput(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Page returns the wrapped page.
func (m PageModel) Page() pages.Page { return m.page }

// Busy reports whether any request of the page is in flight.
func (m PageModel) Busy() bool { return m.inflight > 0 }

// Editing reports whether keys go to a text input or the picker.
func (m PageModel) Editing() bool { return m.editing || m.picker != nil }

// Focus returns the focused row.
func (m PageModel) Focus() int { return m.focus }

// Open starts loading the chain and the page data the first time it is
// called. Later calls do nothing.
func (m PageModel) Open() (PageModel, tea.Cmd) {
	if m.opened {
		return m, nil
	}
	m.opened = true
	logging.FromContext(m.ctx).Debug().
		Ctx(m.ctx).
		Str("component", "tui").
		Str("page", m.page.Name()).
		Msg("opening page")

	var cmds []tea.Cmd
	m, cmds = m.fetch(cmds, m.page.Cascade().BeginLoad())
	m, cmds = m.run(cmds, m.page.Open())
	return m, tea.Batch(cmds...)
}

func (m PageModel) rows() int {
	return m.page.Cascade().Len() + len(m.page.Fields()) + 1
}

func (m PageModel) submitRow() int { return m.rows() - 1 }

// fieldIndex returns the field under focus, or -1.
func (m PageModel) fieldIndex() int {
	i := m.focus - m.page.Cascade().Len()
	if i < 0 || i >= len(m.page.Fields()) {
		return -1
	}
	return i
}

// fetch schedules f. A nil f adds nothing.
func (m PageModel) fetch(cmds []tea.Cmd, f *cascade.Fetch) (PageModel, []tea.Cmd) {
	if f == nil {
		return m, cmds
	}
	ctx, c, name, pending := m.ctx, m.page.Cascade(), m.page.Name(), *f
	m.inflight++
	return m, append(cmds, func() tea.Msg {
		return OptionsLoadedMsg{Page: name, Result: c.Run(ctx, pending)}
	})
}

// run schedules t. A nil t adds nothing.
func (m PageModel) run(cmds []tea.Cmd, t pages.Task) (PageModel, []tea.Cmd) {
	if t == nil {
		return m, cmds
	}
	ctx, name := m.ctx, m.page.Name()
	m.inflight++
	return m, append(cmds, func() tea.Msg {
		return TaskDoneMsg{Page: name, Apply: t(ctx)}
	})
}

// settled schedules the detail load once the chain stopped at level k.
func (m PageModel) settled(cmds []tea.Cmd, k int) (PageModel, []tea.Cmd) {
	if d := m.page.DetailLevel(); d != pages.NoDetail && k <= d {
		return m.run(cmds, m.page.Detail())
	}
	return m, cmds
}

// Update handles the page's own messages and, when the page is active, keys.
func (m PageModel) Update(msg tea.Msg) (PageModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case OptionsLoadedMsg:
		m.inflight--
		next, applied := m.page.Cascade().Apply(m.ctx, msg.Result)
		if !applied {
			return m, nil
		}
		if next != nil {
			m, cmds = m.fetch(cmds, next)
		} else {
			m, cmds = m.settled(cmds, msg.Result.Level)
		}
	case TaskDoneMsg:
		m.inflight--
		if msg.Apply != nil {
			m, cmds = m.fetch(cmds, msg.Apply())
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m PageModel) handleKey(msg tea.KeyMsg) (PageModel, tea.Cmd) {
	switch {
	case m.picker != nil:
		return m.handlePickerKey(msg)
	case m.editing:
		return m.handleEditKey(msg)
	}

	c := m.page.Cascade()
	switch msg.String() {
	case keyTab, keyDown:
		m.focus = (m.focus + 1) % m.rows()
	case keyShiftTab, keyUp:
		m.focus = (m.focus - 1 + m.rows()) % m.rows()
	case keyCtrlS:
		return m.submit()
	case keyReload:
		if m.focus < c.Len() {
			var cmds []tea.Cmd
			m, cmds = m.fetch(cmds, c.BeginReload(m.focus))
			return m, tea.Batch(cmds...)
		}
	case keyEnter:
		switch {
		case m.focus < c.Len():
			m = m.openPicker(m.focus)
		case m.focus == m.submitRow():
			return m.submit()
		default:
			f := m.page.Fields()[m.fieldIndex()]
			m.editing = true
			m.input.SetValue(f.Get())
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m PageModel) openPicker(k int) PageModel {
	c := m.page.Cascade()
	if c.Disabled(k) {
		return m
	}
	opts := c.Options(k)
	m.picker = listview.New(opts, pickerHeight, renderOption, matchOption)
	for i, o := range opts {
		if o.Value == c.Selected(k) {
			m.picker.SetSelected(i)
			break
		}
	}
	m.filter.SetValue("")
	m.filter.Focus()
	return m
}

func (m PageModel) handlePickerKey(msg tea.KeyMsg) (PageModel, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.picker = nil
		m.filter.Blur()
		return m, nil
	case keyEnter:
		item := m.picker.GetSelectedItem()
		m.picker = nil
		m.filter.Blur()
		if item == nil {
			return m, nil
		}
		return m.choose(m.focus, item.Value)
	case keyUp, keyDown, "pgup", "pgdown", "home", "end":
		m.picker.Update(msg)
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.picker.SetFilter(m.filter.Value())
	return m, cmd
}

// choose selects v on level k and loads what depends on it.
func (m PageModel) choose(k int, v string) (PageModel, tea.Cmd) {
	var cmds []tea.Cmd
	next := m.page.Cascade().BeginSelect(k, v)
	if next != nil {
		m, cmds = m.fetch(cmds, next)
	} else {
		m, cmds = m.settled(cmds, k)
	}
	return m, tea.Batch(cmds...)
}

func (m PageModel) handleEditKey(msg tea.KeyMsg) (PageModel, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case keyEnter:
		f := m.page.Fields()[m.fieldIndex()]
		if err := f.Set(m.input.Value()); err != nil {
			m.localizer.NotifyWith(m.notifier, notify.KindError, intl.FieldInvalid, err.Error())
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.focus = (m.focus + 1) % m.rows()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the draft and schedules the save. Validation failures
// are notified by the page.
func (m PageModel) submit() (PageModel, tea.Cmd) {
	task, err := m.page.Submit()
	if err != nil {
		logging.FromContext(m.ctx).Debug().
			Ctx(m.ctx).
			Str("component", "tui").
			Str("page", m.page.Name()).
			Err(err).
			Msg("submit rejected")
		return m, nil
	}
	var cmds []tea.Cmd
	m, cmds = m.run(cmds, task)
	return m, tea.Batch(cmds...)
}

func renderOption(o options.SelectOption, selected bool) string {
	line := o.Label
	if o.Label != o.Value && o.Value != "" {
		line += SubtleStyle.Render(" (" + o.Value + ")")
	}
	if selected {
		return FocusStyle.Render("> ") + TableSelectedStyle.Render(line)
	}
	return "  " + line
}

func matchOption(o options.SelectOption, query string) bool {
	return fuzzy.MatchNormalizedFold(query, o.Label) || fuzzy.MatchNormalizedFold(query, o.Value)
}
