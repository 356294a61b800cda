package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ionenergy/ionctl/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ionctl CLI.
// It wires up logging, tracing, audit logging, and the resource, report,
// console and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env lookup for testability.
// ION_HIDE_CONSOLE_HINT in the environment suppresses the console tip shown
// when ionctl runs without a subcommand in a terminal.
func NewRootCmdWithArgs(
	ver string,
	_ []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "ionctl",
		Short:   "ION charging network operator console",
		Long:    "ionctl: manage organizations, chargers, connectors, tariffs and partner users and pull financial reports",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// cache-ttl 0 means "use the config"; negative is an error.
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}
			output, _ := cmd.Flags().GetString("output")
			if output != "" && output != outputTable && output != outputJSON {
				return fmt.Errorf("%w: %q", ErrOutputFormat, output)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, hide := lookupEnv("ION_HIDE_CONSOLE_HINT"); !hide && isTerminal(os.Stdout) {
				cmd.PrintErrln("Tip: run 'ionctl console' for the interactive console.")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("base-url", "", "backend API base URL (overrides config file and ION_API_BASE_URL)")
	cmd.PersistentFlags().String("locale", "", "notification language: ar or en (overrides config)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table or json (default from config)")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache option lists for this many seconds (0 = use config, overrides config file and env var)")
	cmd.AddCommand(
		NewDashboardCmd(), newOptionsCmd(), newLocationsCmd(), newChargersCmd(),
		newConnectorsCmd(), newTariffsCmd(), newOrganizationsCmd(), newUsersCmd(), newReportsCmd(),
		NewConsoleCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Show status, organizations and top users at a glance
  ionctl dashboard

  # List the organizations that own chargers
  ionctl options organizations

  # Show which chargers are offline
  ionctl chargers status

  # Add a charger to a location
  ionctl chargers save --org ORG-1578 --location L1 --name "Bay 3"

  # Change the buy rate of a connector's tariff
  ionctl tariffs save --org ORG-1578 --location L1 --charger C1 --connector K1 --buy-rate 0.21

  # Export this month's ION payments to Excel
  ionctl reports financial --org ORG-1578 --period 4 --payment 2 --xlsx report.xlsx

  # Open the interactive console on the tariffs page
  ionctl console --page tariffs

  # Point ionctl at a backend
  ionctl config set api.base_url https://ion.example.com/api`

// newOptionsCmd creates the options command group listing selection choices.
func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "options", Short: "List the choices of each selection level"}
	cmd.AddCommand(
		NewOptionsOrganizationsCmd(), NewOptionsLocationsCmd(),
		NewOptionsChargersCmd(), NewOptionsConnectorsCmd(),
	)
	return cmd
}

// newChargersCmd creates the chargers command group.
func newChargersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "chargers", Short: "Charger commands"}
	cmd.AddCommand(NewChargersStatusCmd(), NewChargersShowCmd(), NewChargersSaveCmd())
	return cmd
}

// newConnectorsCmd creates the connectors command group.
func newConnectorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "connectors", Short: "Connector commands"}
	cmd.AddCommand(NewConnectorsShowCmd(), NewConnectorsSaveCmd())
	return cmd
}

// newTariffsCmd creates the tariffs command group.
func newTariffsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tariffs", Short: "Tariff commands"}
	cmd.AddCommand(NewTariffsShowCmd(), NewTariffsSaveCmd())
	return cmd
}

// newOrganizationsCmd creates the organizations command group.
func newOrganizationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "organizations", Aliases: []string{"orgs"}, Short: "Organization commands"}
	cmd.AddCommand(NewOrganizationsListCmd(), NewOrganizationsShowCmd(), NewOrganizationsSaveCmd())
	return cmd
}

// newUsersCmd creates the users command group.
func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "User commands"}
	cmd.AddCommand(NewUsersLeadershipCmd(), NewUsersAddPartnerCmd())
	return cmd
}

// newReportsCmd creates the reports command group.
func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reports", Short: "Report commands"}
	cmd.AddCommand(NewReportsFinancialCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigSetCmd(), NewConfigValidateCmd())
	return cmd
}
