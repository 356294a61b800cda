package dashboard_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/backend/backendtest"
	"github.com/ionenergy/ionctl/internal/dashboard"
)

func TestChargerStatus_Combined(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /chargers/status", http.StatusOK, `{
		"offline": [{"name":"Station Alpha","id":"CHG-001","time":"2h 30m ago"}],
		"online": [{"charger_name":"Station Gamma","charger_id":"CHG-002","last_seen":"Active"},{"foo":1}]
	}`)

	view, err := dashboard.New(srv.Client()).ChargerStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []dashboard.ChargerStatus{{Name: "Station Alpha", ID: "CHG-001", Time: "2h 30m ago"}}, view.Offline)
	assert.Equal(t, []dashboard.ChargerStatus{{Name: "Station Gamma", ID: "CHG-002", Time: "Active"}}, view.Online)
	assert.Equal(t, []string{"GET /chargers/status"}, srv.Keys())
}

func TestChargerStatus_SplitFallback(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /chargers/offline", http.StatusOK, `[{"name":"Hub Beta","id":"CHG-004","time":"45m ago"}]`)
	srv.JSON("GET /chargers/online", http.StatusOK, `{"data":[{"name":"Hub Epsilon","id":"CHG-003","time":"Active"}]}`)

	view, err := dashboard.New(srv.Client()).ChargerStatus(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Offline, 1)
	require.Len(t, view.Online, 1)
	assert.Equal(t, "CHG-004", view.Offline[0].ID)
	assert.Equal(t, "Hub Epsilon", view.Online[0].Name)
	assert.ElementsMatch(t,
		[]string{"GET /chargers/status", "GET /chargers/offline", "GET /chargers/online"},
		srv.Keys())
}

func TestChargerStatus_HalfAnswers(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /chargers/online", http.StatusOK, `[{"name":"Hub Theta","id":"CHG-008","time":"Active"}]`)

	view, err := dashboard.New(srv.Client()).ChargerStatus(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, view.Offline)
	assert.Empty(t, view.Offline)
	assert.Len(t, view.Online, 1)
}

func TestChargerStatus_Unavailable(t *testing.T) {
	srv := backendtest.New(t)

	view, err := dashboard.New(srv.Client()).ChargerStatus(context.Background())

	require.ErrorIs(t, err, dashboard.ErrNoStatus)
	assert.Empty(t, view.Offline)
	assert.Empty(t, view.Online)
}

func TestStatusView_Filter(t *testing.T) {
	view := dashboard.StatusView{
		Offline: []dashboard.ChargerStatus{{Name: "Station Alpha", ID: "CHG-001"}, {Name: "Hub Beta", ID: "CHG-004"}},
		Online:  []dashboard.ChargerStatus{{Name: "Point Zeta", ID: "CHG-005"}},
	}

	got := view.Filter("alpha")
	assert.Len(t, got.Offline, 1)
	assert.Empty(t, got.Online)

	got = view.Filter("chg-005")
	assert.Empty(t, got.Offline)
	assert.Len(t, got.Online, 1)

	assert.Equal(t, view, view.Filter(""))
}

func TestOrganizations(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /organizations", http.StatusOK, `[
		{"id":"ORG-001","name":"ION Energy","amount":15420.5,"energy":"8234.5"},
		{"organization_id":"ORG-002","organization_name":"Green Charge","total_amount":8920.75},
		{"name":"no id"}
	]`)

	got, err := dashboard.New(srv.Client()).Organizations(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, dashboard.Organization{ID: "ORG-001", Name: "ION Energy", Amount: 15420.5, Energy: 8234.5}, got[0])
	assert.Equal(t, "Green Charge", got[1].Name)
	assert.InDelta(t, 8920.75, got[1].Amount, 1e-9)
	assert.Zero(t, got[1].Energy)
}

func TestLeadershipUsers_SortedByCount(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /users/leadership", http.StatusOK, `{"data":[
		{"firstName":"Ahmed","lastName":"Al-Rashid","count":45,"mobile":"+971501234567","energy":1234.5,"amount":2450},
		{"first_name":"Omar","last_name":"Hassan","count":"62","mobile":"+971503456789","energy":2100.8,"amount":4200.25}
	]}`)

	got, err := dashboard.New(srv.Client()).LeadershipUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Omar Hassan", got[0].FullName())
	assert.Equal(t, 62, got[0].Count)
	assert.Equal(t, 45, got[1].Count)
}

func TestOverview_PartialFailure(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("GET /organizations", http.StatusOK, `[{"id":"ORG-001","name":"ION Energy"}]`)
	srv.JSON("GET /users/leadership", http.StatusInternalServerError, `{"error":"down"}`)
	srv.JSON("GET /chargers/status", http.StatusOK, `{"offline":[],"online":[]}`)

	got := dashboard.New(srv.Client()).Overview(context.Background())

	assert.Len(t, got.Organizations, 1)
	assert.Empty(t, got.Leaders)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors, dashboard.PanelLeaders)
}
