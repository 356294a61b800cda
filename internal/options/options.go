// Package options turns heterogeneous backend rows into uniform select
// options and fetches them through the endpoint fallback lists in catalog.
package options

import (
	"sort"

	"github.com/ionenergy/ionctl/internal/backend"
)

// SelectOption is one choice in a selection list.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValueKeys are the row fields tried, in order, for an option's value.
//
//nolint:gochecknoglobals // Read-only alias table.
var ValueKeys = []string{
	"value", "id",
	"organization_id", "organizationId",
	"location_id", "locationId",
	"charger_id", "chargerID", "chargerId",
	"connector_id", "connectorID", "connectorId",
	"tariff_id", "tariffId",
	"ID",
}

// LabelKeys are the row fields tried, in order, for an option's label.
//
//nolint:gochecknoglobals // Read-only alias table.
var LabelKeys = []string{
	"label", "name", "Name",
	"organization_name", "location_name", "charger_name", "connector_name",
	"connector_type",
	"title", "description",
}

// Normalize maps one row to an option. Rows without a value or a label are
// rejected.
func Normalize(row map[string]any) (SelectOption, bool) {
	opt := SelectOption{
		Value: backend.String(row, ValueKeys...),
		Label: backend.String(row, LabelKeys...),
	}
	return opt, opt.Value != "" && opt.Label != ""
}

// NormalizeOptions maps every object row to an option, dropping rows that do
// not resolve to both fields. Order is preserved.
func NormalizeOptions(rows []any) []SelectOption {
	out := make([]SelectOption, 0, len(rows))
	for _, row := range backend.Objects(rows) {
		if opt, ok := Normalize(row); ok {
			out = append(out, opt)
		}
	}
	return out
}

// Equal reports whether a and b hold the same options, ignoring order.
func Equal(a, b []SelectOption) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(o SelectOption) string { return o.Value + "\x00" + o.Label }
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = key(a[i])
		bs[i] = key(b[i])
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Find returns the option with the given value.
func Find(opts []SelectOption, value string) (SelectOption, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	return SelectOption{}, false
}
