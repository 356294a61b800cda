package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/pages"
	"github.com/ionenergy/ionctl/internal/reports"
)

// Layout constants.
const (
	labelWidth        = 24
	minColumnWidth    = 8
	maxColumnWidth    = 24
	maxNameDisplayLen = 32
	truncateSuffix    = "..."
)

// levelLabels are the message ids naming each chain level.
//
//nolint:gochecknoglobals // Read-only lookup.
var levelLabels = [...]string{intl.LabelOrganization, intl.LabelLocation, intl.LabelCharger, intl.LabelConnector}

// View renders the page. spin is the current spinner frame.
func (m PageModel) View(spin string) string {
	sections := []string{m.renderChain(spin), m.renderFields(), m.renderSubmit(spin)}
	if m.picker != nil {
		sections = append(sections, m.renderPicker())
	}
	if panel := m.renderPanel(); panel != "" {
		sections = append(sections, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PageModel) cursor(row int) string {
	if row == m.focus {
		return FocusStyle.Render("> ")
	}
	return "  "
}

func (m PageModel) renderChain(spin string) string {
	c := m.page.Cascade()
	lines := make([]string, 0, c.Len())
	for k := 0; k < c.Len(); k++ {
		label := c.Level(k).Name
		if k < len(levelLabels) {
			label = m.localizer.T(levelLabels[k])
		}

		var value string
		switch {
		case c.Loading(k):
			value = spin + " " + SubtleStyle.Render(m.localizer.T(intl.LabelLoading))
		case c.Disabled(k):
			value = SubtleStyle.Render("-")
		default:
			value = ValueStyle.Render(optionLabel(c.Options(k), c.Selected(k)))
		}
		lines = append(lines, m.cursor(k)+LabelStyle.Width(labelWidth).Render(label)+value)
	}
	return strings.Join(lines, "\n")
}

// optionLabel returns the label of the option with value v, or v itself.
func optionLabel(opts []options.SelectOption, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func (m PageModel) renderFields() string {
	fields := m.page.Fields()
	base := m.page.Cascade().Len()
	lines := make([]string, 0, len(fields))
	for i, f := range fields {
		value := f.Get()
		if m.editing && m.focus == base+i {
			value = m.input.View()
		} else if value == "" {
			value = SubtleStyle.Render("-")
		}
		lines = append(lines, m.cursor(base+i)+LabelStyle.Width(labelWidth).Render(f.Label)+value)
	}
	return strings.Join(lines, "\n")
}

func (m PageModel) renderSubmit(spin string) string {
	label := "[ Save ]"
	if _, ok := m.page.(*pages.Reports); ok {
		label = "[ Generate ]"
	}
	line := m.cursor(m.submitRow()) + HeaderStyle.Render(label)
	if m.page.Form().Busy() {
		line += " " + spin + " " + SubtleStyle.Render(m.localizer.T(intl.LabelSaving))
	}
	return line
}

func (m PageModel) renderPicker() string {
	body := LabelStyle.Render("Filter: ") + m.filter.View()
	if m.picker.ItemCount() == 0 {
		body += "\n" + SubtleStyle.Render("No options.")
	} else {
		body += "\n" + m.picker.View()
	}
	return BoxStyle.Render(body)
}

// renderPanel renders the page's data table, if it has one.
func (m PageModel) renderPanel() string {
	height := max(m.height-chromeHeight-m.rows(), minHeight)

	switch p := m.page.(type) {
	case *pages.Chargers:
		if p.StatusErr != nil {
			return CriticalStyle.Render(p.StatusErr.Error())
		}
		rows := make([][]string, 0, len(p.Status.Offline)+len(p.Status.Online))
		for _, c := range p.Status.Offline {
			rows = append(rows, []string{m.localizer.T(intl.StatusOffline), truncate(c.Name), c.ID, c.Time})
		}
		for _, c := range p.Status.Online {
			rows = append(rows, []string{m.localizer.T(intl.StatusOnline), truncate(c.Name), c.ID, c.Time})
		}
		if len(rows) == 0 {
			return SubtleStyle.Render(m.localizer.T(intl.StatusEmpty))
		}
		return renderTable([]string{"State", "Name", "ID", "Since"}, rows, height)

	case *pages.Organizations:
		if p.OverviewErr != nil {
			return CriticalStyle.Render(p.OverviewErr.Error())
		}
		rows := make([][]string, 0, len(p.Overview))
		for _, o := range p.Overview {
			rows = append(rows, []string{o.ID, truncate(o.Name), intl.FormatAmount(o.Amount), intl.FormatEnergy(o.Energy)})
		}
		return renderTable([]string{"ID", "Name", "Amount", "Energy"}, rows, height)

	case *pages.Users:
		if p.LeadersErr != nil {
			return CriticalStyle.Render(p.LeadersErr.Error())
		}
		rows := make([][]string, 0, len(p.Leaders))
		for i, u := range p.Leaders {
			rows = append(rows, []string{
				fmt.Sprint(i + 1), truncate(u.FullName()), u.Mobile,
				intl.FormatInt(int64(u.Count)), intl.FormatEnergy(u.Energy), intl.FormatAmount(u.Amount),
			})
		}
		return renderTable([]string{"#", "Name", "Mobile", "Sessions", "Energy", "Amount"}, rows, height)

	case *pages.Reports:
		return m.renderReport(p.Table, height)
	}
	return ""
}

func (m PageModel) renderReport(t *reports.Table, height int) string {
	if t == nil || t.Len() == 0 {
		return ""
	}
	out := renderTable(t.Columns, t.Strings(), height)
	totals := t.Totals()
	parts := make([]string, 0, len(totals)+1)
	parts = append(parts, m.localizer.T(intl.LabelRows, map[string]any{"Count": t.Len()}))
	for _, c := range t.NumericColumns() {
		if sum, ok := totals[c]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", c, sum.String()))
		}
	}
	return out + "\n" + SubtleStyle.Render(strings.Join(parts, " | "))
}

// renderTable renders a read-only bubbles table sized to its content.
func renderTable(header []string, rows [][]string, height int) string {
	cols := make([]table.Column, len(header))
	for i, h := range header {
		w := max(len(h), minColumnWidth)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithHeight(min(len(rows)+1, height)),
	)
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t.View()
}

func truncate(s string) string {
	if len(s) <= maxNameDisplayLen {
		return s
	}
	return s[:maxNameDisplayLen-len(truncateSuffix)] + truncateSuffix
}
