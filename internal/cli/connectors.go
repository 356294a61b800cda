package cli

import (
	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// NewConnectorsShowCmd prints one connector.
func NewConnectorsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show CONNECTOR_ID",
		Short: "Show a connector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := detail.Connectors(s.client).Load(cmd.Context(), args[0])
			if d == nil {
				s.localizer.Notify(s.notifier, notify.KindError, intl.ConnectorNotFound)
				return notFound("connector", args[0])
			}
			page := pages.NewConnectors(s.env())
			page.Draft = *d
			return showRecord(cmd, s, d, page.Fields())
		},
	}
}

// NewConnectorsSaveCmd adds a connector to a charger or updates one.
func NewConnectorsSaveCmd() *cobra.Command {
	var (
		path pathFlags
		id   string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add a connector, or update one with --id",
		Example: `  # Add a CCS2 connector
  ionctl connectors save --org ORG-1578 --location L1 --charger C1 --connector-type CCS2 --power 50

  # Disable a connector
  ionctl connectors save --org ORG-1578 --location L1 --charger C1 --id K1 --enabled false`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelCharger+1)
	cmd.Flags().StringVar(&id, "id", "", "connector id to update (omit to add)")
	fields := bindFields(cmd, pages.NewConnectors(pages.Env{}))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := path.require(pages.LevelCharger); err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		route := append(path.path(pages.LevelCharger+1), id)
		return runSave(cmd, s, pages.NewConnectors(s.env()), route, fields)
	}
	return cmd
}
