package options_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/backend/backendtest"
	"github.com/ionenergy/ionctl/internal/options"
)

func rows(t *testing.T, s string) []any {
	t.Helper()
	doc, err := oj.ParseString(s)
	require.NoError(t, err)
	return doc.([]any)
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []options.SelectOption
	}{
		{
			name: "unknown fields dropped",
			in:   `[{"foo":1}]`,
			want: []options.SelectOption{},
		},
		{
			name: "value and label keys",
			in:   `[{"value":"a","label":"A"}]`,
			want: []options.SelectOption{{Value: "a", Label: "A"}},
		},
		{
			name: "organization aliases",
			in:   `[{"organization_id":"ORG-1578","organization_name":"Acme"},{"organizationId":7,"name":"Beta"}]`,
			want: []options.SelectOption{{Value: "ORG-1578", Label: "Acme"}, {Value: "7", Label: "Beta"}},
		},
		{
			name: "charger aliases",
			in:   `[{"chargerID":"C1","charger_name":"ION PRIME - 07"},{"chargerId":"C2","Name":"ION FAST"}]`,
			want: []options.SelectOption{{Value: "C1", Label: "ION PRIME - 07"}, {Value: "C2", Label: "ION FAST"}},
		},
		{
			name: "connector type as label",
			in:   `[{"connector_id":11,"connector_type":"CCS2"}]`,
			want: []options.SelectOption{{Value: "11", Label: "CCS2"}},
		},
		{
			name: "id wins over later aliases",
			in:   `[{"id":"x","charger_id":"y","title":"T"}]`,
			want: []options.SelectOption{{Value: "x", Label: "T"}},
		},
		{
			name: "empty values fall through",
			in:   `[{"value":"","id":"z","label":"","name":"Zed"}]`,
			want: []options.SelectOption{{Value: "z", Label: "Zed"}},
		},
		{
			name: "missing label dropped, non objects skipped",
			in:   `[{"id":"a"}, 5, "text", {"ID":"b","description":"Bee"}]`,
			want: []options.SelectOption{{Value: "b", Label: "Bee"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := options.NormalizeOptions(rows(t, tt.in))
			assert.Equal(t, tt.want, got)
			for _, o := range got {
				assert.NotEmpty(t, o.Value)
				assert.NotEmpty(t, o.Label)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := []options.SelectOption{{Value: "1", Label: "A"}, {Value: "2", Label: "B"}}
	b := []options.SelectOption{{Value: "2", Label: "B"}, {Value: "1", Label: "A"}}
	assert.True(t, options.Equal(a, b))
	assert.False(t, options.Equal(a, a[:1]))
	assert.False(t, options.Equal(a, []options.SelectOption{{Value: "1", Label: "A"}, {Value: "2", Label: "C"}}))
}

func TestFetchOptions_FirstUsableWins(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /first", http.StatusOK, `{"message":"no rows here"}`)
	srv.JSON("GET /second", http.StatusOK, `{"items":[{"id":"L1","name":"Gravity Gate"}]}`)
	srv.JSON("GET /third", http.StatusOK, `[{"id":"never","name":"never"}]`)
	f := options.NewFetcher(srv.Client())

	got := f.FetchOptions(context.Background(), []backend.Endpoint{
		backend.Get("/first"), backend.Get("/second"), backend.Get("/third"),
	})

	assert.Equal(t, []options.SelectOption{{Value: "L1", Label: "Gravity Gate"}}, got)
	assert.Equal(t, []string{"GET /first", "GET /second"}, srv.Keys())
}

func TestFetchOptions_AllFailIsEmpty(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /a", http.StatusInternalServerError, `[{"id":"1","name":"x"}]`)
	f := options.NewFetcher(srv.Client())

	got := f.FetchOptions(context.Background(), []backend.Endpoint{backend.Get("/a"), backend.Get("/b")})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Len(t, srv.Requests(), 2)

	_, err := f.Fetch(context.Background(), "test", []backend.Endpoint{backend.Get("/a")})
	require.ErrorIs(t, err, backend.ErrNoUsableResponse)
}

func TestNamedFetchers(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /chargers/organizations", http.StatusNotFound, `{"error":"nope"}`)
	srv.JSON("GET /organizations/chargers", http.StatusOK,
		`{"data":[{"organization_id":"ORG-1578","organization_name":"Acme"}]}`)
	srv.JSON("GET /locations?organization_id=ORG-1578", http.StatusOK, `[{"location_id":"L1","location_name":"North Ajman"}]`)
	srv.JSON("GET /locations/L1/chargers", http.StatusOK, `[{"charger_id":"C1","charger_name":"ION PRIME - 08"}]`)
	srv.JSON("GET /connectors?chargerId=C1", http.StatusOK, `[{"connectorId":"K1","connector_type":"GBT AC"}]`)
	f := options.NewFetcher(srv.Client())
	ctx := context.Background()

	orgs := f.ChargerOrganizations(ctx)
	assert.Equal(t, []options.SelectOption{{Value: "ORG-1578", Label: "Acme"}}, orgs)
	assert.True(t, options.Equal(orgs, f.ChargerOrganizations(ctx)), "repeat calls agree")

	assert.Equal(t, []options.SelectOption{{Value: "L1", Label: "North Ajman"}}, f.LocationsByOrg(ctx, "ORG-1578"))
	assert.Equal(t, []options.SelectOption{{Value: "C1", Label: "ION PRIME - 08"}}, f.ChargersByLocation(ctx, "L1"))
	assert.Equal(t, []options.SelectOption{{Value: "K1", Label: "GBT AC"}}, f.ConnectorsByCharger(ctx, "C1"))
}

func TestNamedFetchers_EmptyParentMakesNoRequest(t *testing.T) {
	srv := backendtest.New(t)
	f := options.NewFetcher(srv.Client())
	ctx := context.Background()

	assert.Empty(t, f.LocationsByOrg(ctx, ""))
	assert.Empty(t, f.ChargersByLocation(ctx, ""))
	assert.Empty(t, f.ConnectorsByCharger(ctx, ""))

	opts, err := f.LocationsLoader()(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, opts)
	assert.Empty(t, srv.Requests())
}

func TestFind(t *testing.T) {
	opts := []options.SelectOption{{Value: "1", Label: "A"}}
	o, ok := options.Find(opts, "1")
	assert.True(t, ok)
	assert.Equal(t, "A", o.Label)
	_, ok = options.Find(opts, "2")
	assert.False(t, ok)
}
