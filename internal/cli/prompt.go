package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ionenergy/ionctl/internal/tui"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes").
	Accepted bool
	// Cancelled is true if reading the answer failed.
	Cancelled bool
}

// ConfirmOverwrite asks whether the existing file at path may be replaced.
// It declines without prompting when not attached to a terminal. An empty
// answer declines.
func ConfirmOverwrite(writer io.Writer, reader io.Reader, path string) PromptResult {
	if !tui.IsTTY() {
		return PromptResult{Accepted: false}
	}
	return confirm(writer, reader, fmt.Sprintf("? %s already exists. Overwrite it? [y/N] ", path))
}

// confirm prints question and reads a yes/no answer.
func confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	fmt.Fprint(writer, question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		// EOF or error - treat as cancelled
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}
