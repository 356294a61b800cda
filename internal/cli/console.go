package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/tui"
)

const consoleCmdName = "console"

// ErrNotTerminal is returned when the console is started without a terminal.
var ErrNotTerminal = errors.New("the console needs an interactive terminal")

// NewConsoleCmd opens the interactive console.
func NewConsoleCmd() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   consoleCmdName,
		Short: "Open the interactive console",
		Long: `Opens the full-screen console with one tab per page. Each page has the
organization → location → charger → connector selection on top, the
editable record below it and its data panel at the bottom.

Logs are written only when logging.file is configured.`,
		Example: `  # Open the console on the chargers page
  ionctl console

  # Start on the reports page
  ionctl console --page reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !tui.IsTTY() {
				return ErrNotTerminal
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			app, err := tui.NewApp(cmd.Context(), s.env(), page)
			if err != nil {
				return err
			}

			logger.Info().Ctx(cmd.Context()).Str("page", page).Msg("console started")
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("running console: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&page, "page", tui.PageChargers,
		"start page: "+strings.Join(tui.PageNames(), ", "))

	return cmd
}
