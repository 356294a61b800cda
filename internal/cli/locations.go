package cli

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/pages"
)

// newLocationsCmd creates the locations command group.
func newLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "locations", Short: "Location commands"}
	cmd.AddCommand(NewLocationsListCmd())
	return cmd
}

// NewLocationsListCmd lists the charging locations of an organization.
func NewLocationsListCmd() *cobra.Command {
	var (
		path   pathFlags
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the charging locations of an organization",
		Example: `  # Every location of an organization
  ionctl locations list --org ORG-1578

  # Locations whose name resembles "mall"
  ionctl locations list --org ORG-1578 --search mall`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelOrganization+1)
	cmd.Flags().StringVar(&search, "search", "", "fuzzy filter on location name or id")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := path.require(pages.LevelOrganization); err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		org := path.path(pages.LevelOrganization + 1)[0]
		locs, err := options.NewFetcher(s.client).Fetch(cmd.Context(), "locations_by_org", catalog.LocationsByOrg(org))
		if err != nil {
			s.localizer.Notify(s.notifier, notify.KindError, intl.LocationsLoadFailed)
			return fmt.Errorf("loading locations: %w", err)
		}
		return renderOptions(cmd.OutOrStdout(), s.json(), searchOptions(locs, search))
	}
	return cmd
}

func searchOptions(opts []options.SelectOption, query string) []options.SelectOption {
	if query == "" {
		return opts
	}
	out := make([]options.SelectOption, 0, len(opts))
	for _, o := range opts {
		if fuzzy.MatchNormalizedFold(query, o.Label) || fuzzy.MatchNormalizedFold(query, o.Value) {
			out = append(out, o)
		}
	}
	return out
}
