package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/cache"
	"github.com/ionenergy/ionctl/internal/config"
)

// NewConfigShowCmd prints the effective configuration: defaults, the config
// file, .env files and ION_* variables.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [KEY]",
		Short: "Show the effective configuration",
		Example: `  # Show every setting
  ionctl config show

  # Show one setting
  ionctl config show api.base_url`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			keys := config.Keys()
			if len(args) == 1 {
				keys = args
			}

			values := make(map[string]string, len(keys))
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				v, err := cfg.Get(k)
				if err != nil {
					return err
				}
				values[k] = v
				rows = append(rows, []string{k, readableValue(k, v)})
			}

			if output, _ := cmd.Flags().GetString("output"); output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), values)
			}
			return renderTable(cmd.OutOrStdout(), []string{"Key", "Value"}, rows)
		},
	}
}

// readableValue adds the duration to second counts in table output.
func readableValue(key, value string) string {
	if key != "cache.ttl_seconds" {
		return value
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, cache.FormatDuration(time.Duration(n)*time.Second))
}
