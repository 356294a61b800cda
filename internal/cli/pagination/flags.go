package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults and sort orders.
const (
	DefaultLimit     = 0
	DefaultOffset    = 0
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	MaxLimit         = 10000
)

// Validation errors.
var (
	ErrNegative          = errors.New("pagination values cannot be negative")
	ErrLimitTooLarge     = errors.New("limit must be at most 10000")
	ErrMixedModes        = errors.New("page and offset parameters are mutually exclusive")
	ErrPageWithoutSize   = errors.New("page-size must be specified when using page")
	ErrSizeWithoutPage   = errors.New("page must be specified when using page-size")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'column' or 'column:order' (e.g., 'amount:desc')")
	ErrEmptySortField    = errors.New("sort column cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort column")
)

// Params holds the paging flags of a list command. Offset mode uses Limit
// and Offset; page mode uses Page and PageSize. The modes are exclusive.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// Validate checks bounds and mode consistency.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Offset < 0 || p.Page < 0 || p.PageSize < 0 {
		return ErrNegative
	}
	if p.Limit > MaxLimit {
		return ErrLimitTooLarge
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedModes
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutSize
	}
	if p.Page == 0 && p.PageSize > 0 {
		return ErrSizeWithoutPage
	}
	return nil
}

// IsPageBased reports whether page mode is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// OffsetLimit returns the effective offset and limit. A zero limit means
// no limit.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. In page mode a page past
// the end shows the last page; in offset mode it is empty.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}
	offset, limit := p.OffsetLimit()
	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// sortParts is the maximum number of parts in "column:order".
const sortParts = 2

// ParseSort parses "column" or "column:order". The order defaults to asc.
// An empty expression means no sorting and returns an empty column.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSort(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", DefaultSortOrder, nil
	}
	parts := strings.Split(expr, ":")
	if len(parts) > sortParts {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}
	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}
	order = DefaultSortOrder
	if len(parts) == sortParts {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
