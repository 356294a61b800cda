package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/reports"
	"github.com/ionenergy/ionctl/internal/save"
)

// Reports generates financial reports filtered by the chain's selections.
// Submit runs the report; the form state machine tracks the request.
type Reports struct {
	base

	Period  string
	Payment string
	From    string
	To      string
	// Table holds the last generated report.
	Table *reports.Table

	generator *reports.Generator
}

// NewReports builds the reports page.
func NewReports(env Env) *Reports {
	env = env.withDefaults()
	return &Reports{
		base:      base{env: env, name: "reports", chain: env.chain(LevelConnector+1, nil)},
		Period:    reports.PeriodToday,
		Payment:   reports.PaymentAll,
		Table:     reports.NewTable(nil),
		generator: reports.NewGenerator(env.Client),
	}
}

// DetailLevel reports that reports have no detail record.
func (p *Reports) DetailLevel() int { return NoDetail }

// Open has nothing to load besides the chain.
func (p *Reports) Open() Task { return nil }

// Detail is a no-op.
func (p *Reports) Detail() Task { return nil }

// Fields exposes the period, payment and custom range.
func (p *Reports) Fields() []Field {
	return []Field{
		choiceField("period", "Period", &p.Period, reports.PeriodOptions()),
		choiceField("payment", "Payment", &p.Payment, reports.PaymentOptions()),
		textField("from", "From (YYYY-MM-DD)", &p.From),
		textField("to", "To (YYYY-MM-DD)", &p.To),
	}
}

// Filter is the report filter for the current selections.
func (p *Reports) Filter() reports.Filter {
	return reports.Filter{
		OrganizationID: p.existing(LevelOrganization),
		LocationID:     p.existing(LevelLocation),
		ChargerID:      p.existing(LevelCharger),
		ConnectorID:    p.existing(LevelConnector),
		Period:         p.Period,
		Payment:        p.Payment,
		From:           p.From,
		To:             p.To,
	}.Normalize()
}

// Submit generates the report. An invalid custom range is notified and
// returned.
func (p *Reports) Submit() (Task, error) {
	f := p.Filter()
	if err := p.form.Begin(f.Validate); err != nil {
		if !errors.Is(err, save.ErrBusy) {
			p.env.Localizer.NotifyWith(p.env.Notifier, notify.KindError, intl.ReportsFailed, err.Error())
		}
		return nil, err
	}
	return func(ctx context.Context) Apply {
		rows, err := p.generator.Generate(ctx, f)
		return func() *cascade.Fetch {
			p.Table = reports.NewTable(rows)
			if err != nil {
				p.form.Finish(save.Result{Success: false, Message: err.Error()})
				p.notify(notify.KindError, intl.ReportsFailed)
			} else {
				p.form.Finish(save.Result{Success: true, Message: p.env.Localizer.T(intl.LabelRows, map[string]any{"Count": len(rows)})})
				if len(rows) == 0 {
					p.notify(notify.KindInfo, intl.ReportsEmpty)
				}
			}
			p.form.Reset()
			return nil
		}
	}, nil
}

// choiceField edits a value restricted to opts, shown by label.
func choiceField(key, label string, p *string, opts []options.SelectOption) Field {
	f := textField(key, label, p)
	f.Set = func(s string) error {
		for _, o := range opts {
			if s == o.Value || s == o.Label {
				*p = o.Value
				return nil
			}
		}
		return fmt.Errorf("%w: %s: unknown choice %q", ErrFieldValue, key, s)
	}
	return f
}
