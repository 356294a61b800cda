package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
)

// optionsListCmd builds a command listing the choices under one parent.
// failID is the message shown when no endpoint answers.
func optionsListCmd(
	use, short, operation, failID string,
	source func(parentID string) []backend.Endpoint,
) *cobra.Command {
	validArgs := cobra.ExactArgs(1)
	if source == nil {
		validArgs = cobra.NoArgs
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			candidates := catalog.ChargerOrganizations()
			if source != nil {
				candidates = source(args[0])
			}

			opts, err := options.NewFetcher(s.client).Fetch(cmd.Context(), operation, candidates)
			if err != nil {
				s.localizer.Notify(s.notifier, notify.KindError, failID)
				return fmt.Errorf("%s: %w", operation, err)
			}
			return renderOptions(cmd.OutOrStdout(), s.json(), opts)
		},
	}
}

// NewOptionsOrganizationsCmd lists the organizations that own chargers.
func NewOptionsOrganizationsCmd() *cobra.Command {
	return optionsListCmd("organizations", "List organizations owning chargers",
		"charger_organizations", intl.OrganizationsLoadFailed, nil)
}

// NewOptionsLocationsCmd lists the locations of an organization.
func NewOptionsLocationsCmd() *cobra.Command {
	return optionsListCmd("locations ORG_ID", "List the locations of an organization",
		"locations_by_org", intl.LocationsLoadFailed, catalog.LocationsByOrg)
}

// NewOptionsChargersCmd lists the chargers at a location.
func NewOptionsChargersCmd() *cobra.Command {
	return optionsListCmd("chargers LOCATION_ID", "List the chargers at a location",
		"chargers_by_location", intl.ChargersLoadFailed, catalog.ChargersByLocation)
}

// NewOptionsConnectorsCmd lists the connectors of a charger.
func NewOptionsConnectorsCmd() *cobra.Command {
	return optionsListCmd("connectors CHARGER_ID", "List the connectors of a charger",
		"connectors_by_charger", intl.ConnectorsLoadFailed, catalog.ConnectorsByCharger)
}
