package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// NewChargersStatusCmd shows which chargers are offline and online.
func NewChargersStatusCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show charger connectivity",
		Example: `  # Show every charger's connectivity
  ionctl chargers status

  # Only chargers whose name or id resembles "bay"
  ionctl chargers status --search bay`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			view, err := dashboard.New(s.client).ChargerStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading charger status: %w", err)
			}
			view = view.Filter(search)
			if s.json() {
				return renderJSON(cmd.OutOrStdout(), view)
			}
			return renderStatus(cmd, s.localizer, view)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "fuzzy filter on charger name or id")
	return cmd
}

func renderStatus(cmd *cobra.Command, loc *intl.Localizer, view dashboard.StatusView) error {
	if len(view.Offline)+len(view.Online) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), loc.T(intl.StatusEmpty))
		return err
	}
	rows := make([][]string, 0, len(view.Offline)+len(view.Online))
	for _, c := range view.Offline {
		rows = append(rows, []string{loc.T(intl.StatusOffline), c.Name, c.ID, c.Time})
	}
	for _, c := range view.Online {
		rows = append(rows, []string{loc.T(intl.StatusOnline), c.Name, c.ID, c.Time})
	}
	return renderTable(cmd.OutOrStdout(), []string{"State", "Name", "ID", "Since"}, rows)
}

// NewChargersShowCmd prints one charger.
func NewChargersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show CHARGER_ID",
		Short: "Show a charger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := detail.Chargers(s.client).Load(cmd.Context(), args[0])
			if d == nil {
				s.localizer.Notify(s.notifier, notify.KindInfo, intl.ChargerNotFound)
				return notFound("charger", args[0])
			}
			page := pages.NewChargers(s.env())
			page.Draft = *d
			return showRecord(cmd, s, d, page.Fields())
		},
	}
}

// NewChargersSaveCmd adds or updates a charger.
func NewChargersSaveCmd() *cobra.Command {
	var (
		path pathFlags
		id   string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add a charger, or update one with --id",
		Long: `Adds a charger to a location, or updates the charger given by --id.

When updating, the charger is loaded first and only the fields passed as
flags change.`,
		Example: `  # Add a charger
  ionctl chargers save --org ORG-1578 --location L1 --name "Bay 3"

  # Rename an existing charger
  ionctl chargers save --org ORG-1578 --location L1 --id C1 --name "Bay 1b"`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelLocation+1)
	cmd.Flags().StringVar(&id, "id", "", "charger id to update (omit to add)")
	fields := bindFields(cmd, pages.NewChargers(pages.Env{}))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		route := append(path.path(pages.LevelLocation+1), id)
		return runSave(cmd, s, pages.NewChargers(s.env()), route, fields)
	}
	return cmd
}
