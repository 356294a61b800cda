package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/pages"
)

// NewUsersLeadershipCmd prints the leadership board.
func NewUsersLeadershipCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leadership",
		Short: "Show the users with the most charging sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			users, err := dashboard.New(s.client).LeadershipUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading leadership board: %w", err)
			}
			if limit > 0 && len(users) > limit {
				users = users[:limit]
			}
			if s.json() {
				return renderJSON(cmd.OutOrStdout(), users)
			}
			return renderLeaders(cmd.OutOrStdout(), users)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many users (0 = all)")
	return cmd
}

// NewUsersAddPartnerCmd creates a partner user in an organization.
func NewUsersAddPartnerCmd() *cobra.Command {
	var path pathFlags

	cmd := &cobra.Command{
		Use:   "add-partner",
		Short: "Add a partner user to an organization",
		Example: `  # Add an operator who reads notifications in English
  ionctl users add-partner --org ORG-1578 --first-name Lina --last-name Haddad \
    --mobile 0790000000 --email lina@example.com --role 2 --language en`,
		Args: cobra.NoArgs,
	}
	path.bind(cmd, pages.LevelOrganization+1)
	fields := bindFields(cmd, pages.NewUsers(pages.Env{}))

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runSave(cmd, s, pages.NewUsers(s.env()), path.path(pages.LevelOrganization+1), fields)
	}
	return cmd
}
