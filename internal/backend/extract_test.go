package backend_test

import (
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/backend"
)

func parse(t *testing.T, s string) any {
	t.Helper()
	doc, err := oj.ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestRows(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantOK  bool
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, wantLen: 2, wantOK: true},
		{name: "data wrapper", body: `{"data":[{"id":1}]}`, wantLen: 1, wantOK: true},
		{name: "items wrapper", body: `{"total":3,"items":[{},{},{}]}`, wantLen: 3, wantOK: true},
		{name: "records wrapper", body: `{"records":[{"id":1}]}`, wantLen: 1, wantOK: true},
		{name: "data wins over items", body: `{"items":[1,2],"data":[1]}`, wantLen: 1, wantOK: true},
		{name: "other array field", body: `{"chargers":[{"id":1},{"id":2}]}`, wantLen: 2, wantOK: true},
		{name: "nested in data", body: `{"data":{"list":[{"id":1}]}}`, wantLen: 1, wantOK: true},
		{name: "empty array is usable", body: `{"data":[]}`, wantLen: 0, wantOK: true},
		{name: "no array", body: `{"message":"ok"}`, wantOK: false},
		{name: "scalar", body: `42`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := backend.Rows(parse(t, tt.body))
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, rows, tt.wantLen)
		})
	}
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID any
		wantOK bool
	}{
		{name: "object", body: `{"id":"C1","name":"Bay"}`, wantID: "C1", wantOK: true},
		{name: "array first", body: `[{"id":"C1"},{"id":"C2"}]`, wantID: "C1", wantOK: true},
		{name: "data object", body: `{"data":{"id":"C1"}}`, wantID: "C1", wantOK: true},
		{name: "data array", body: `{"data":[{"id":"C9"}]}`, wantID: "C9", wantOK: true},
		{name: "empty array", body: `[]`, wantOK: false},
		{name: "empty object", body: `{}`, wantOK: false},
		{name: "empty data", body: `{"data":[]}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := backend.Record(parse(t, tt.body))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, rec["id"])
			}
		})
	}
}

func TestFields(t *testing.T) {
	row := parse(t, `{
		"id": 12,
		"empty": "",
		"name": "Bay 3",
		"rate": "0.25",
		"bad": "abc",
		"power": 22.5,
		"flag": "yes",
		"zero": 0,
		"nested": {"x": 1}
	}`).(map[string]any)

	assert.Equal(t, "12", backend.String(row, "missing", "empty", "id"))
	assert.Equal(t, "Bay 3", backend.String(row, "name"))
	assert.Empty(t, backend.String(row, "nested"))

	f, ok := backend.Number(row, "bad", "rate")
	require.True(t, ok)
	assert.InDelta(t, 0.25, f, 1e-9)
	assert.Zero(t, backend.NumberOrZero(row, "bad", "empty"))

	n := backend.Int(row, "power")
	require.NotNil(t, n)
	assert.Equal(t, 23, *n)
	assert.Nil(t, backend.Int(row, "name"))

	b, ok := backend.Bool(row, "flag")
	assert.True(t, ok)
	assert.True(t, b)
	b, ok = backend.Bool(row, "zero")
	assert.True(t, ok)
	assert.False(t, b)
	_, ok = backend.Bool(row, "name")
	assert.False(t, ok)
}
