package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness,
together with the ION_* environment. Unlike other commands, which skip a
broken file with a warning, validate fails on it.`,
		Example: `  # Validate current configuration
  ionctl config validate

  # Validate and show the resulting values
  ionctl config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated values")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrConfigMissing) {
		fmt.Fprintf(out, "No configuration file at %s; using defaults\n", path)
		cfg = config.Default()
		if err = cfg.ApplyEnv(); err == nil {
			err = cfg.Validate()
		}
	}
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Fprintln(out, "Configuration is valid")
	if verbose {
		rows := make([][]string, 0, len(config.Keys()))
		for _, k := range config.Keys() {
			v, _ := cfg.Get(k)
			rows = append(rows, []string{k, v})
		}
		return renderTable(out, []string{"Key", "Value"}, rows)
	}
	return nil
}
