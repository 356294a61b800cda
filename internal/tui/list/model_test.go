package listview_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listview "github.com/ionenergy/ionctl/internal/tui/list"
)

func render(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func contains(item, query string) bool {
	return strings.Contains(strings.ToLower(item), strings.ToLower(query))
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Bay %d", i)
	}
	return out
}

func TestModel_Navigation(t *testing.T) {
	m := listview.New(items(50), 10, render, contains)

	tests := []struct {
		name string
		key  tea.KeyType
		want int
	}{
		{"down", tea.KeyDown, 1},
		{"up", tea.KeyUp, 0},
		{"up at top stays", tea.KeyUp, 0},
		{"page down", tea.KeyPgDown, 10},
		{"end", tea.KeyEnd, 49},
		{"down at bottom stays", tea.KeyDown, 49},
		{"page up", tea.KeyPgUp, 39},
		{"home", tea.KeyHome, 0},
	}
	for _, tt := range tests {
		m.Update(tea.KeyMsg{Type: tt.key})
		assert.Equal(t, tt.want, m.Selected(), tt.name)
		assert.LessOrEqual(t, m.VisibleFrom(), m.Selected(), tt.name)
		assert.Greater(t, m.VisibleTo(), m.Selected(), tt.name)
	}
}

func TestModel_ViewRendersOnlyViewport(t *testing.T) {
	m := listview.New(items(10000), 5, render, contains)
	m.SetSelected(5000)

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines, "> Bay 5000")
}

func TestModel_Filter(t *testing.T) {
	m := listview.New([]string{"North", "South", "Northeast"}, 10, render, contains)
	m.SetSelected(2)

	m.SetFilter("north")
	assert.Equal(t, 2, m.ItemCount())
	assert.Equal(t, 0, m.Selected(), "filtering resets the selection")
	require.NotNil(t, m.GetSelectedItem())
	assert.Equal(t, "North", *m.GetSelectedItem())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Northeast", *m.GetSelectedItem())

	m.SetFilter("west")
	assert.Zero(t, m.ItemCount())
	assert.Nil(t, m.GetSelectedItem())
	assert.Empty(t, m.View())

	m.SetFilter(" ")
	assert.Equal(t, 3, m.ItemCount(), "a blank filter keeps everything")
	assert.Equal(t, " ", m.Filter())
}

func TestModel_NilMatchKeepsEverything(t *testing.T) {
	m := listview.New([]string{"a", "b"}, 10, render, nil)
	m.SetFilter("zzz")
	assert.Equal(t, 2, m.ItemCount())
}

func TestModel_Empty(t *testing.T) {
	m := listview.New[string](nil, 10, render, contains)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Zero(t, m.Selected())
	assert.Nil(t, m.GetSelectedItem())
	assert.Empty(t, m.View())
}
