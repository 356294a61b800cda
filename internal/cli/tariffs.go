package cli

import (
	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// NewTariffsShowCmd prints the tariff of a connector.
func NewTariffsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show CONNECTOR_ID",
		Short: "Show the tariff of a connector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := detail.Tariffs(s.client).Load(cmd.Context(), args[0])
			if d == nil {
				s.localizer.Notify(s.notifier, notify.KindInfo, intl.TariffNotFound)
				return notFound("tariff for connector", args[0])
			}
			page := pages.NewTariffs(s.env())
			page.Draft = *d
			return showRecord(cmd, s, d, page.Fields())
		},
	}
}

// NewTariffsSaveCmd sets the tariff of a connector. An existing tariff is
// loaded first so that only the given fields change.
func NewTariffsSaveCmd() *cobra.Command {
	var path pathFlags

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update the tariff of a connector",
		Example: `  # Set the rates of connector K1
  ionctl tariffs save --org ORG-1578 --location L1 --charger C1 --connector K1 \
    --type kWh --buy-rate 0.18 --sell-rate 0.25`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelConnector+1)
	fields := bindFields(cmd, pages.NewTariffs(pages.Env{}))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runSave(cmd, s, pages.NewTariffs(s.env()), path.path(pages.LevelConnector+1), fields)
	}
	return cmd
}
