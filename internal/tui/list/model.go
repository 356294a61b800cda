package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// MatchFunc reports whether item matches a non-empty filter query.
type MatchFunc[T any] func(item T, query string) bool

// Model is a scrolling list with a filter. Only the rows inside the
// viewport are rendered, so option lists of any length stay responsive.
type Model[T any] struct {
	items []T
	// shown holds the indexes of items matching the filter.
	shown []int
	query string

	render RenderFunc[T]
	match  MatchFunc[T]

	// selected is a position in shown.
	selected    int
	visibleFrom int
	visibleTo   int
	height      int
}

// New builds a list over items. A nil match keeps every item whatever the
// filter.
func New[T any](items []T, height int, render RenderFunc[T], match MatchFunc[T]) *Model[T] {
	m := &Model[T]{
		items:  items,
		render: render,
		match:  match,
		height: height,
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes. Other keys are left to the
// owner, which usually feeds them to a filter input.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.updateVisibleRange()
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys move the selection.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.shown) == 0 {
		return
	}
	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.shown) - 1)
	default:
	}
}

// SetFilter keeps only the items matching query and moves the selection to
// the first of them.
func (m *Model[T]) SetFilter(query string) {
	if query == m.query {
		return
	}
	m.query = query
	m.refilter()
}

// Filter returns the current query.
func (m *Model[T]) Filter() string { return m.query }

func (m *Model[T]) refilter() {
	m.shown = m.shown[:0]
	q := strings.TrimSpace(m.query)
	for i, item := range m.items {
		if q == "" || m.match == nil || m.match(item, q) {
			m.shown = append(m.shown, i)
		}
	}
	m.selected = 0
	m.updateVisibleRange()
}

// updateVisibleRange keeps the selected row inside the viewport, centered
// when possible.
func (m *Model[T]) updateVisibleRange() {
	if len(m.shown) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	half := m.height / halfViewportDivisor
	from := m.selected - half
	to := from + m.height
	if from < 0 {
		from, to = 0, m.height
	}
	if to > len(m.shown) {
		to = len(m.shown)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.render(m.items[m.shown[i]], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the number of items matching the filter.
func (m *Model[T]) ItemCount() int {
	return len(m.shown)
}

// Selected returns the selected position among the matching items.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected moves the selection, capped to the matching items.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.shown) == 0, index < 0:
		m.selected = 0
	case index >= len(m.shown):
		m.selected = len(m.shown) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// VisibleFrom returns the first visible position (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible position (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// GetSelectedItem returns the selected item, or nil when nothing matches.
func (m *Model[T]) GetSelectedItem() *T {
	if m.selected < 0 || m.selected >= len(m.shown) {
		return nil
	}
	return &m.items[m.shown[m.selected]]
}
