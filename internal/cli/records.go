package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/pages"
	"github.com/ionenergy/ionctl/internal/save"
)

// ErrNotFound is returned when no endpoint yields the record of an id.
var ErrNotFound = errors.New("record not found")

// showRecord prints a loaded record: as JSON, or as the labelled fields of
// the page editing it.
func showRecord(cmd *cobra.Command, s *session, record any, fields []pages.Field) error {
	if s.json() {
		return renderJSON(cmd.OutOrStdout(), record)
	}
	return renderFields(cmd.OutOrStdout(), fields)
}

// runSave selects path on page, applies the field flags on top of the
// loaded record and saves it. A rejected save is returned as an error after
// the backend message has been notified. An id that no endpoint returns is
// not found; nothing is sent.
func runSave(cmd *cobra.Command, s *session, page pages.Page, path []string, ff *fieldFlags) error {
	ctx := cmd.Context()
	pages.Preset(ctx, page, path...)
	if page.Missing() {
		return notFound(strings.TrimSuffix(page.Name(), "s"), path[page.DetailLevel()])
	}
	if err := ff.apply(cmd, page.Fields()); err != nil {
		return err
	}

	err := pages.Save(ctx, page)
	logger.Info().
		Ctx(ctx).
		Str("operation", "save").
		Str("page", page.Name()).
		Bool("success", err == nil).
		Msg("save finished")
	if err != nil {
		return err
	}
	return renderResult(cmd, s, page.Form().Last())
}

// renderResult prints the outcome of a save.
func renderResult(cmd *cobra.Command, s *session, res save.Result) error {
	if s.json() {
		return renderJSON(cmd.OutOrStdout(), res)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return err
}

// notFound builds the error of a show command.
func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
