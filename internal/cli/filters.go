package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/reports"
)

// ErrInvalidFilter is returned for a filter that is not "column=value".
var ErrInvalidFilter = errors.New("filter must be column=value")

// ValidateFilter checks that f has the "column=value" shape with a non-empty
// column.
func ValidateFilter(f string) error {
	key, _, ok := strings.Cut(f, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, f)
	}
	return nil
}

// filterRows keeps the rows whose cell in the filter's column equals its value,
// ignoring case.
func filterRows(rows []reports.Row, f string) []reports.Row {
	key, value, _ := strings.Cut(f, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	out := make([]reports.Row, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(reports.Cell(r, key), value) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyFilters validates and applies a slice of filter strings to report rows.
// All filters are validated before any is applied; empty strings are
// ignored. A warning is logged if the filtered result is empty.
func ApplyFilters(
	ctx context.Context,
	rows []reports.Row,
	filters []string,
) ([]reports.Row, error) {
	log := logging.FromContext(ctx)

	if len(filters) == 0 {
		return rows, nil
	}

	// Validate all filters upfront
	for _, f := range filters {
		if f == "" {
			continue
		}
		if err := ValidateFilter(f); err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", f).
				Err(err).
				Msg("invalid filter expression")
			return nil, err
		}
	}

	// Apply filters sequentially
	result := rows
	for _, f := range filters {
		if f == "" {
			continue
		}
		before := len(result)
		result = filterRows(result, f)
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("filter", f).
			Int("before", before).
			Int("after", len(result)).
			Msg("applied filter")
	}

	if len(result) == 0 && len(rows) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("original_count", len(rows)).
			Msg("no rows match filter criteria")
	}

	return result, nil
}
