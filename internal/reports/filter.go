// Package reports generates financial reports and provides the generic row
// table they are shown in: column discovery, search, totals and export.
package reports

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/options"
)

// Row is one report line as returned by the backend.
type Row = map[string]any

// Report periods.
const (
	PeriodToday     = "1"
	PeriodYesterday = "2"
	PeriodLastWeek  = "3"
	PeriodThisMonth = "4"
	PeriodLastMonth = "5"
	PeriodCustom    = "6"
)

// Payment filters.
const (
	PaymentAll  = "0"
	PaymentCash = "1"
	PaymentION  = "2"
)

// PeriodOptions lists the selectable periods.
func PeriodOptions() []options.SelectOption {
	return []options.SelectOption{
		{Value: PeriodToday, Label: "Today"},
		{Value: PeriodYesterday, Label: "Yesterday"},
		{Value: PeriodLastWeek, Label: "Last week"},
		{Value: PeriodThisMonth, Label: "This month"},
		{Value: PeriodLastMonth, Label: "Last month"},
		{Value: PeriodCustom, Label: "Custom"},
	}
}

// PaymentOptions lists the selectable payment filters.
func PaymentOptions() []options.SelectOption {
	return []options.SelectOption{
		{Value: PaymentAll, Label: "All"},
		{Value: PaymentION, Label: "ION"},
		{Value: PaymentCash, Label: "Cash"},
	}
}

// ErrCustomRange is returned when a custom period lacks a valid range.
var ErrCustomRange = errors.New("custom period needs from and to dates (YYYY-MM-DD), from not after to")

// DateLayout is the format of From and To.
const DateLayout = "2006-01-02"

// Filter selects the rows of a financial report. Empty ids mean "all".
type Filter struct {
	OrganizationID string `json:"organizationId"`
	LocationID     string `json:"locationId"`
	ChargerID      string `json:"chargerId"`
	ConnectorID    string `json:"connectorId"`
	Period         string `json:"period"`
	Payment        string `json:"payment"`
	From           string `json:"fromDate,omitempty"`
	To             string `json:"toDate,omitempty"`
}

// Normalize fills the default period and payment and drops sentinel ids.
func (f Filter) Normalize() Filter {
	if f.Period == "" {
		f.Period = PeriodToday
	}
	if f.Payment == "" {
		f.Payment = PaymentAll
	}
	for _, id := range []*string{&f.OrganizationID, &f.LocationID, &f.ChargerID, &f.ConnectorID} {
		if options.IsSentinel(*id) {
			*id = ""
		}
	}
	if f.Period != PeriodCustom {
		f.From, f.To = "", ""
	}
	return f
}

// Validate checks the custom date range.
func (f Filter) Validate() error {
	if f.Period != PeriodCustom {
		return nil
	}
	from, err := time.Parse(DateLayout, f.From)
	if err != nil {
		return ErrCustomRange
	}
	to, err := time.Parse(DateLayout, f.To)
	if err != nil || to.Before(from) {
		return ErrCustomRange
	}
	return nil
}

// Query renders the filter as query parameters, leaving out empty fields.
func (f Filter) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("organizationId", f.OrganizationID)
	set("locationId", f.LocationID)
	set("chargerId", f.ChargerID)
	set("connectorId", f.ConnectorID)
	set("period", f.Period)
	set("payment", f.Payment)
	set("fromDate", f.From)
	set("toDate", f.To)
	return q
}

// Generator fetches reports.
type Generator struct {
	client *backend.Client
}

// NewGenerator returns a Generator using client.
func NewGenerator(client *backend.Client) *Generator {
	return &Generator{client: client}
}

// Generate posts the filter, falling back to a GET with query parameters,
// and returns the object rows of the first usable answer. When no endpoint
// answers usably the rows are empty and the error wraps
// backend.ErrNoUsableResponse.
func (g *Generator) Generate(ctx context.Context, f Filter) ([]Row, error) {
	f = f.Normalize()
	start := time.Now()
	rows, used, err := backend.Probe(ctx, g.client, "financial_report", catalog.FinancialReport(f.Query()), f,
		backend.RequireOK(backend.RowsAccept))
	log := logging.FromContext(ctx)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "reports").
			Str("operation", "financial_report").
			Err(err).
			Msg("report generation failed")
		return []Row{}, err
	}
	out := backend.Objects(rows)
	log.Debug().
		Ctx(ctx).
		Str("component", "reports").
		Str("operation", "financial_report").
		Str("endpoint", used.String()).
		Int("rows", len(out)).
		Dur("duration", time.Since(start)).
		Msg("report generated")
	return out, nil
}
