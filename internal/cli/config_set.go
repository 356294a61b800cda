package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/config"
)

// NewConfigSetCmd changes one key in the configuration file. Environment
// overrides are not written back.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: "Sets one key in the configuration file, creating the file when needed.\n\nKeys:\n  " +
			strings.Join(config.Keys(), "\n  "),
		Example: `  # Point ionctl at a backend
  ionctl config set api.base_url https://ion.example.com/api

  # Cache option lists for ten minutes
  ionctl config set cache.enabled true
  ionctl config set cache.ttl_seconds 600`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			cfg := config.Default()
			cfg.SetPath(path)
			if err = cfg.LoadFile(path); err != nil && !errors.Is(err, config.ErrConfigMissing) {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			v, _ := cfg.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
			return nil
		},
	}
}
