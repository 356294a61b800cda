package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/cli/pagination"
	"github.com/ionenergy/ionctl/internal/pages"
	"github.com/ionenergy/ionctl/internal/reports"
)

// ErrReport wraps the reason a report could not be generated.
var ErrReport = errors.New("report failed")

// reportFlags holds the flags of the financial report command beyond the
// chain selection and the filter fields.
type reportFlags struct {
	sort    string
	search  string
	filters []string
	xlsx    string
	csv     string
	page    pagination.Params
}

// reportOutput is the JSON shape of a report.
type reportOutput struct {
	Columns    []string          `json:"columns"`
	Rows       []reports.Row     `json:"rows"`
	Totals     map[string]string `json:"totals,omitempty"`
	Pagination pagination.Meta   `json:"pagination"`
}

// NewReportsFinancialCmd generates the financial report.
func NewReportsFinancialCmd() *cobra.Command {
	var (
		path  pathFlags
		flags reportFlags
	)

	cmd := &cobra.Command{
		Use:   "financial",
		Short: "Generate the financial report",
		Long: `Generates the financial report for the selected organization, location,
charger and connector. Periods: 1 today, 2 yesterday, 3 last week,
4 this month, 5 last month, 6 custom (needs --from and --to).
Payments: 0 all, 1 cash, 2 ION.

Search, filters and sorting apply before exporting; paging only affects
what is printed.`,
		Example: `  # This month's report for one organization, biggest amounts first
  ionctl reports financial --org ORG-1578 --period 4 --sort amount:desc

  # Custom range, cash only, exported to Excel and CSV
  ionctl reports financial --org ORG-1578 --period 6 --from 2025-01-01 --to 2025-01-31 \
    --payment 1 --xlsx january.xlsx --csv january.csv

  # Second page of 20 rows for one charger
  ionctl reports financial --org ORG-1578 --location L1 --charger C1 --page 2 --page-size 20`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelConnector+1)
	fields := bindFields(cmd, pages.NewReports(pages.Env{}))
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort by column, e.g. amount:desc")
	cmd.Flags().StringVar(&flags.search, "search", "", "keep rows with a cell fuzzily matching this text")
	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "keep rows where column=value (repeatable)")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "write the report to this Excel file")
	cmd.Flags().StringVar(&flags.csv, "csv", "", "write the report to this CSV file")
	cmd.Flags().IntVar(&flags.page.Limit, "limit", 0, "print at most this many rows")
	cmd.Flags().IntVar(&flags.page.Offset, "offset", 0, "skip this many rows")
	cmd.Flags().IntVar(&flags.page.Page, "page", 0, "page number (with --page-size)")
	cmd.Flags().IntVar(&flags.page.PageSize, "page-size", 0, "rows per page")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := flags.page.Validate(); err != nil {
			return err
		}
		sortCol, sortOrder, err := pagination.ParseSort(flags.sort)
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		page := pages.NewReports(s.env())
		page.Cascade().Preset(path.path(pages.LevelConnector + 1)...)
		if err = fields.apply(cmd, page.Fields()); err != nil {
			return err
		}
		table, err := generateReport(cmd, page)
		if err != nil {
			return err
		}

		rows, err := ApplyFilters(cmd.Context(), table.Search(flags.search).Rows, flags.filters)
		if err != nil {
			return err
		}
		rows, err = pagination.NewRowSorter(table.Columns).Sort(rows, sortCol, sortOrder)
		if err != nil {
			return err
		}
		table = table.WithRows(rows)

		if err = exportReport(table, flags.xlsx, flags.csv); err != nil {
			return err
		}
		return renderReport(cmd, s, table, flags.page)
	}
	return cmd
}

// generateReport runs the report request of page and audits the outcome.
func generateReport(cmd *cobra.Command, page *pages.Reports) (*reports.Table, error) {
	ctx := cmd.Context()
	f := page.Filter()
	audit := startAudit(ctx, "reports financial", map[string]string{
		"organization_id": f.OrganizationID,
		"location_id":     f.LocationID,
		"charger_id":      f.ChargerID,
		"connector_id":    f.ConnectorID,
		"period":          f.Period,
		"payment":         f.Payment,
	})

	task, err := page.Submit()
	if err != nil {
		audit.finish(ctx, "", err)
		return nil, err
	}
	pages.Run(ctx, page, task)

	last := page.Form().Last()
	if !last.Success {
		err = fmt.Errorf("%w: %s", ErrReport, last.Message)
		audit.finish(ctx, "", err)
		return nil, err
	}
	audit.finish(ctx, last.Message, nil)
	return page.Table, nil
}

// exportReport writes the non-empty export paths.
func exportReport(table *reports.Table, xlsxPath, csvPath string) error {
	if xlsxPath != "" {
		if err := writeFile(xlsxPath, table.WriteXLSX); err != nil {
			return fmt.Errorf("writing %s: %w", xlsxPath, err)
		}
	}
	if csvPath != "" {
		if err := writeFile(csvPath, table.WriteCSV); err != nil {
			return fmt.Errorf("writing %s: %w", csvPath, err)
		}
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// renderReport prints one page of the report with the totals of all rows.
func renderReport(cmd *cobra.Command, s *session, table *reports.Table, p pagination.Params) error {
	totals := map[string]string{}
	for col, sum := range table.Totals() {
		totals[col] = sum.String()
	}
	shown := table.WithRows(pagination.Apply(p, table.Rows))
	meta := pagination.NewMeta(p, table.Len())

	if s.json() {
		return renderJSON(cmd.OutOrStdout(), reportOutput{
			Columns:    table.Columns,
			Rows:       shown.Rows,
			Totals:     totals,
			Pagination: meta,
		})
	}

	out := cmd.OutOrStdout()
	if table.Len() == 0 {
		_, err := fmt.Fprintln(out, "No rows.")
		return err
	}
	if err := renderTable(out, table.Columns, shown.Strings()); err != nil {
		return err
	}
	cols := make([]string, 0, len(totals))
	for c := range totals {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, c := range cols {
		fmt.Fprintf(out, "Total %s: %s\n", c, totals[c])
	}
	if meta.TotalPages > 1 {
		fmt.Fprintf(out, "Page %d of %d (%d rows)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
	}
	return nil
}
