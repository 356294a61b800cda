package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ionenergy/ionctl/internal/backend"
)

// RowSorter sorts generic rows by one of a known set of columns. Cells that
// are numeric on both sides compare as numbers, everything else compares as
// case-folded text; empty cells sort last in either order.
type RowSorter struct {
	columns map[string]bool
}

// NewRowSorter accepts the given columns as sort keys.
func NewRowSorter(columns []string) *RowSorter {
	s := &RowSorter{columns: make(map[string]bool, len(columns))}
	for _, c := range columns {
		s.columns[c] = true
	}
	return s
}

// IsValidField reports whether column can be sorted on.
func (s *RowSorter) IsValidField(column string) bool {
	return s.columns[column]
}

// ValidFields returns the sortable columns in lexical order.
func (s *RowSorter) ValidFields() []string {
	out := make([]string, 0, len(s.columns))
	for c := range s.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Sort returns a sorted copy of rows. An empty column returns rows as is.
func (s *RowSorter) Sort(rows []map[string]any, column, order string) ([]map[string]any, error) {
	if column == "" {
		return rows, nil
	}
	if !s.IsValidField(column) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, column, strings.Join(s.ValidFields(), ", "))
	}

	sorted := make([]map[string]any, len(rows))
	copy(sorted, rows)
	desc := order == SortOrderDesc
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][column], sorted[j][column]
		aEmpty, bEmpty := backend.Stringify(a) == "", backend.Stringify(b) == ""
		if aEmpty || bEmpty {
			return !aEmpty && bEmpty
		}
		c := compareCells(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted, nil
}

func compareCells(a, b any) int {
	fa, okA := backend.ToNumber(a)
	fb, okB := backend.ToNumber(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(backend.Stringify(a)), strings.ToLower(backend.Stringify(b)))
}
