package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/intl"
)

const defaultDashboardLeaders = 5

// overviewJSON is the JSON form of the dashboard. Failed panels are listed
// by name with their error.
type overviewJSON struct {
	dashboard.Overview
	Failed map[string]string `json:"failed,omitempty"`
}

// NewDashboardCmd prints charger status, organizations and the leadership
// board together. The three panels load concurrently.
func NewDashboardCmd() *cobra.Command {
	var leaders int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show charger status, organizations and top users",
		Long: `Shows the landing overview: charger connectivity, the organizations
with their revenue and energy, and the users with the most sessions.

A panel that cannot be loaded is reported and the others are still shown.
The command fails only when no panel loads.`,
		Example: `  # Show the overview
  ionctl dashboard

  # Top 10 users, as JSON
  ionctl dashboard --leaders 10 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ov := dashboard.New(s.client).Overview(cmd.Context())
			if len(ov.Errors) == len(dashboardPanels) {
				return fmt.Errorf("loading dashboard: %w", joinPanelErrors(ov.Errors))
			}
			if leaders > 0 && len(ov.Leaders) > leaders {
				ov.Leaders = ov.Leaders[:leaders]
			}
			if s.json() {
				out := overviewJSON{Overview: ov}
				for name, e := range ov.Errors {
					if out.Failed == nil {
						out.Failed = map[string]string{}
					}
					out.Failed[name] = e.Error()
				}
				return renderJSON(cmd.OutOrStdout(), out)
			}
			return renderOverview(cmd, s.localizer, ov)
		},
	}

	cmd.Flags().IntVar(&leaders, "leaders", defaultDashboardLeaders, "show at most this many top users (0 = all)")
	return cmd
}

var dashboardPanels = []string{ //nolint:gochecknoglobals // fixed panel order
	dashboard.PanelStatus, dashboard.PanelOrganizations, dashboard.PanelLeaders,
}

var panelTitles = map[string]string{ //nolint:gochecknoglobals // fixed panel titles
	dashboard.PanelStatus:        "Charger status",
	dashboard.PanelOrganizations: "Organizations",
	dashboard.PanelLeaders:       "Top users",
}

func joinPanelErrors(errs map[string]error) error {
	var all []error
	for _, name := range dashboardPanels {
		if err, ok := errs[name]; ok {
			all = append(all, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(all...)
}

func renderOverview(cmd *cobra.Command, loc *intl.Localizer, ov dashboard.Overview) error {
	w := cmd.OutOrStdout()
	for i, name := range dashboardPanels {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, panelTitles[name])
		if err, ok := ov.Errors[name]; ok {
			fmt.Fprintf(w, "unavailable: %v\n", err)
			continue
		}
		var err error
		switch name {
		case dashboard.PanelStatus:
			err = renderStatus(cmd, loc, ov.Status)
		case dashboard.PanelOrganizations:
			err = renderOrganizations(w, ov.Organizations)
		case dashboard.PanelLeaders:
			err = renderLeaders(w, ov.Leaders)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderOrganizations(w io.Writer, orgs []dashboard.Organization) error {
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{o.ID, o.Name, intl.FormatAmount(o.Amount), intl.FormatEnergy(o.Energy)})
	}
	return renderTable(w, []string{"ID", "Name", "Amount", "Energy"}, rows)
}

func renderLeaders(w io.Writer, users []dashboard.LeadershipUser) error {
	rows := make([][]string, 0, len(users))
	for i, u := range users {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), u.FullName(), u.Mobile, intl.FormatInt(int64(u.Count)),
			intl.FormatEnergy(u.Energy), intl.FormatAmount(u.Amount),
		})
	}
	return renderTable(w, []string{"#", "Name", "Mobile", "Sessions", "Energy", "Amount"}, rows)
}
