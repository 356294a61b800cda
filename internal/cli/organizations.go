package cli

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// NewOrganizationsListCmd prints the organizations overview.
func NewOrganizationsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations with their revenue and energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			orgs, err := dashboard.New(s.client).Organizations(cmd.Context())
			if err != nil {
				s.localizer.Notify(s.notifier, notify.KindError, intl.OrganizationsLoadFailed)
				return fmt.Errorf("loading organizations: %w", err)
			}
			orgs = searchOrganizations(orgs, search)
			if s.json() {
				return renderJSON(cmd.OutOrStdout(), orgs)
			}
			return renderOrganizations(cmd.OutOrStdout(), orgs)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "fuzzy filter on organization name or id")
	return cmd
}

func searchOrganizations(orgs []dashboard.Organization, query string) []dashboard.Organization {
	if query == "" {
		return orgs
	}
	out := make([]dashboard.Organization, 0, len(orgs))
	for _, o := range orgs {
		if fuzzy.MatchNormalizedFold(query, o.Name) || fuzzy.MatchNormalizedFold(query, o.ID) {
			out = append(out, o)
		}
	}
	return out
}

// NewOrganizationsShowCmd prints one organization.
func NewOrganizationsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ORG_ID",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			d := detail.Organizations(s.client).Load(cmd.Context(), args[0])
			if d == nil {
				s.localizer.Notify(s.notifier, notify.KindWarning, intl.OrganizationNotFound)
				return notFound("organization", args[0])
			}
			page := pages.NewOrganizations(s.env())
			page.Draft = *d
			return showRecord(cmd, s, d, page.Fields())
		},
	}
}

// NewOrganizationsSaveCmd adds or updates an organization.
func NewOrganizationsSaveCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add an organization, or update one with --id",
		Example: `  # Add an organization
  ionctl organizations save --name Acme --name-ar "أكمي" --contact-phonenumber 0790000000

  # Update the details of an organization
  ionctl organizations save --id ORG-1578 --details "Fleet customer"`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVar(&id, "id", "", "organization id to update (omit to add)")
	fields := bindFields(cmd, pages.NewOrganizations(pages.Env{}))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runSave(cmd, s, pages.NewOrganizations(s.env()), []string{id}, fields)
	}
	return cmd
}
