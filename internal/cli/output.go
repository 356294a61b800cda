package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/pages"
)

const tabPadding = 2

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// renderTable writes header, a dashed rule and rows in aligned columns.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// renderOptions prints a choice list.
func renderOptions(w io.Writer, asJSON bool, opts []options.SelectOption) error {
	if asJSON {
		return renderJSON(w, opts)
	}
	if len(opts) == 0 {
		_, err := fmt.Fprintln(w, "No options.")
		return err
	}
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{o.Value, o.Label})
	}
	return renderTable(w, []string{"Value", "Label"}, rows)
}

// renderFields prints a record as label/value lines.
func renderFields(w io.Writer, fields []pages.Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Get())
	}
	return tw.Flush()
}
