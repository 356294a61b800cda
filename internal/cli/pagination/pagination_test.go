package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/cli/pagination"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  pagination.Params
		wantErr error
	}{
		{name: "zero value", params: pagination.Params{}},
		{name: "offset mode", params: pagination.Params{Limit: 10, Offset: 20}},
		{name: "page mode", params: pagination.Params{Page: 2, PageSize: 10}},
		{name: "negative", params: pagination.Params{Limit: -1}, wantErr: pagination.ErrNegative},
		{name: "limit too large", params: pagination.Params{Limit: 10001}, wantErr: pagination.ErrLimitTooLarge},
		{name: "mixed", params: pagination.Params{Page: 1, PageSize: 5, Offset: 10}, wantErr: pagination.ErrMixedModes},
		{name: "page without size", params: pagination.Params{Page: 1}, wantErr: pagination.ErrPageWithoutSize},
		{name: "size without page", params: pagination.Params{PageSize: 5}, wantErr: pagination.ErrSizeWithoutPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	tests := []struct {
		name   string
		params pagination.Params
		want   []int
	}{
		{name: "no paging", params: pagination.Params{}, want: items},
		{name: "limit", params: pagination.Params{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset and limit", params: pagination.Params{Limit: 3, Offset: 5}, want: []int{6, 7}},
		{name: "offset past end", params: pagination.Params{Offset: 9}, want: []int{}},
		{name: "page two", params: pagination.Params{Page: 2, PageSize: 3}, want: []int{4, 5, 6}},
		{name: "page past end shows last page", params: pagination.Params{Page: 9, PageSize: 3}, want: []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Apply(tt.params, items))
		})
	}
}

func TestNewMeta(t *testing.T) {
	m := pagination.NewMeta(pagination.Params{Page: 2, PageSize: 10}, 25)
	assert.Equal(t, pagination.Meta{CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true, HasNext: true}, m)

	m = pagination.NewMeta(pagination.Params{Limit: 10, Offset: 20}, 25)
	assert.Equal(t, 3, m.CurrentPage)
	assert.False(t, m.HasNext)

	m = pagination.NewMeta(pagination.Params{}, 4)
	assert.Equal(t, 1, m.TotalPages)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{expr: "", wantField: "", wantOrder: "asc"},
		{expr: "amount", wantField: "amount", wantOrder: "asc"},
		{expr: "amount:DESC", wantField: "amount", wantOrder: "desc"},
		{expr: " name : asc ", wantField: "name", wantOrder: "asc"},
		{expr: "a:b:c", wantErr: pagination.ErrInvalidSortFormat},
		{expr: ":desc", wantErr: pagination.ErrEmptySortField},
		{expr: "amount:up", wantErr: pagination.ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := pagination.ParseSort(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestRowSorter(t *testing.T) {
	rows := []map[string]any{
		{"name": "beta", "amount": "100"},
		{"name": "Alpha", "amount": 25.5},
		{"name": "gamma"},
		{"name": "delta", "amount": int64(300)},
	}
	s := pagination.NewRowSorter([]string{"name", "amount"})

	byAmount, err := s.Sort(rows, "amount", "asc")
	require.NoError(t, err)
	assert.Equal(t, []any{"Alpha", "beta", "delta", "gamma"}, names(byAmount))

	byAmount, err = s.Sort(rows, "amount", "desc")
	require.NoError(t, err)
	assert.Equal(t, []any{"delta", "beta", "Alpha", "gamma"}, names(byAmount))

	byName, err := s.Sort(rows, "name", "asc")
	require.NoError(t, err)
	assert.Equal(t, []any{"Alpha", "beta", "delta", "gamma"}, names(byName))
	assert.Equal(t, "beta", rows[0]["name"], "input is not modified")

	_, err = s.Sort(rows, "energy", "asc")
	require.ErrorIs(t, err, pagination.ErrInvalidSortField)
	assert.Equal(t, []string{"amount", "name"}, s.ValidFields())
}

func names(rows []map[string]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["name"]
	}
	return out
}
