package reports

import (
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/ionenergy/ionctl/internal/backend"
)

// Table is a set of rows with a stable column order.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable derives the columns from rows: the union of their keys in order
// of first appearance, keys within one row taken lexically.
func NewTable(rows []Row) *Table {
	seen := map[string]bool{}
	var cols []string
	for _, r := range rows {
		keys := make([]string, 0, len(r))
		for k := range r {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			cols = append(cols, k)
		}
	}
	return &Table{Columns: cols, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Cell renders one cell as text. Objects and arrays render as "".
func Cell(r Row, column string) string {
	return backend.Stringify(r[column])
}

// Strings renders every row as cells in column order.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		line := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			line[j] = Cell(r, c)
		}
		out[i] = line
	}
	return out
}

// Search keeps the rows with at least one cell fuzzily matching query,
// ignoring case and diacritics. An empty query keeps every row.
func (t *Table) Search(query string) *Table {
	if query == "" {
		return t
	}
	kept := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if fuzzy.MatchNormalizedFold(query, Cell(r, c)) {
				kept = append(kept, r)
				break
			}
		}
	}
	return &Table{Columns: t.Columns, Rows: kept}
}

// WithRows returns a table with the same columns over rows.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows}
}

// NumericColumns returns the columns whose non-empty cells are all numbers,
// with at least one such cell.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.Columns {
		numeric, found := true, false
		for _, r := range t.Rows {
			v, ok := r[c]
			if !ok || Cell(r, c) == "" {
				continue
			}
			if _, isNum := toDecimal(v); !isNum {
				numeric = false
				break
			}
			found = true
		}
		if numeric && found {
			out = append(out, c)
		}
	}
	return out
}

// Totals sums every numeric column exactly.
func (t *Table) Totals() map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, c := range t.NumericColumns() {
		sum := decimal.Zero
		for _, r := range t.Rows {
			if d, ok := toDecimal(r[c]); ok {
				sum = sum.Add(d)
			}
		}
		out[c] = sum
	}
	return out
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		if _, err := strconv.ParseFloat(n, 64); err != nil {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(n)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
