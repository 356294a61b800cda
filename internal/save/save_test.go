package save_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/backend/backendtest"
	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/save"
)

func TestSaveCharger_NewChargerPostsThenFallsBack(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("POST /chargers/save", http.StatusOK, `{"success":true}`)
	coord := save.NewCoordinator(srv.Client())

	res := coord.SaveCharger(context.Background(), save.ChargerPayload{
		ChargerID:  options.NewCharger,
		LocationID: "L1",
		Name:       "Bay 3",
	})

	assert.Equal(t, save.Result{Success: true, Message: "Charger added"}, res)
	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "POST /chargers", reqs[0].Key())
	assert.Equal(t, "POST /chargers/save", reqs[1].Key())

	body := reqs[0].JSON(t)
	assert.NotContains(t, body, "charger_id")
	assert.Equal(t, "Bay 3", body["name"])
	assert.Equal(t, "L1", body["location_id"])
	assert.Equal(t, "AC", body["type"])
	assert.Equal(t, "offline", body["status"])
	assert.Equal(t, reqs[0].Body, reqs[1].Body)
}

func TestSaveCharger_UpdatePutsFirst(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("PUT /chargers/C7", http.StatusOK, `{"message":"ok, stored"}`)
	coord := save.NewCoordinator(srv.Client())

	res := coord.SaveCharger(context.Background(), save.ChargerPayload{ChargerID: "C7", Name: "Bay 7", Type: "DC"})

	assert.Equal(t, save.Result{Success: true, Message: "ok, stored"}, res)
	assert.Equal(t, []string{"PUT /chargers/C7"}, srv.Keys())
	assert.Equal(t, "C7", srv.Requests()[0].JSON(t)["charger_id"])
}

func TestSave_ResponseInterpretation(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   save.Result
	}{
		{name: "explicit success", status: http.StatusOK, body: `{"success":true,"message":"done"}`, want: save.Result{Success: true, Message: "done"}},
		{name: "success flag overrides status", status: http.StatusInternalServerError, body: `{"success":true}`, want: save.Result{Success: true, Message: "Connector updated"}},
		{name: "business rejection", status: http.StatusOK, body: `{"success":false,"message":"duplicate connector"}`, want: save.Result{Success: false, Message: "duplicate connector"}},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"pin too short"}`, want: save.Result{Success: false, Message: "pin too short"}},
		{name: "bare failure", status: http.StatusConflict, body: `[]`, want: save.Result{Success: false, Message: "Failed to save connector"}},
		{name: "2xx without flag", status: http.StatusCreated, body: `{"id":"K1"}`, want: save.Result{Success: true, Message: "Connector updated"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := backendtest.New(t)
			srv.JSON("PUT /connectors/K1", tt.status, tt.body)
			coord := save.NewCoordinator(srv.Client())

			got := coord.SaveConnector(context.Background(), save.ConnectorPayload{ConnectorID: "K1", ChargerID: "C1", ConnectorType: "CCS2"})

			assert.Equal(t, tt.want, got)
			assert.Len(t, srv.Requests(), 1, "a JSON answer stops the fallback")
		})
	}
}

func TestSave_AllEndpointsFail(t *testing.T) {
	srv := backendtest.New(t)
	srv.Handle("POST /tariffs", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	coord := save.NewCoordinator(srv.Client())

	res := coord.SaveTariff(context.Background(), save.TariffPayload{ConnectorID: "K1", Type: "Energy", BuyRate: 0.1, SellRate: 0.2})

	assert.Equal(t, save.Result{Success: false, Message: "Failed to save tariff"}, res)
	assert.Equal(t, []string{"POST /tariffs", "POST /tariffs/save"}, srv.Keys())
}

func TestTariffBody_OmitsZeroExtras(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("PUT /tariffs/T1", http.StatusOK, `{"success":true}`)
	coord := save.NewCoordinator(srv.Client())

	coord.SaveTariff(context.Background(), save.TariffPayload{
		TariffID: "T1", ConnectorID: "K1", Type: "Energy",
		BuyRate: 0.18, SellRate: 0.25, ClientPercentage: 10,
	})

	body := srv.Requests()[0].JSON(t)
	assert.InDelta(t, 0.18, body["buy_rate"], 1e-9)
	assert.InDelta(t, 10.0, body["client_percentage"], 1e-9)
	assert.NotContains(t, body, "transaction_fees")
	assert.NotContains(t, body, "partner_percentage")
}

func TestConnectorBody_Defaults(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("POST /connectors", http.StatusOK, `{"success":true}`)
	coord := save.NewCoordinator(srv.Client())

	res := coord.SaveConnector(context.Background(), save.ConnectorPayload{
		ConnectorID: options.NewConnector, ChargerID: "C1", ConnectorType: "Type 2",
	})

	assert.Equal(t, "Connector added", res.Message)
	body := srv.Requests()[0].JSON(t)
	assert.NotContains(t, body, "connector_id")
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, true, body["enabled"])
	assert.Equal(t, false, body["stop_on80"])
}

func TestCreatePartnerUser(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("POST /partner-users", http.StatusOK, `{"success":true,"message":"created"}`)
	coord := save.NewCoordinator(srv.Client())

	res := coord.CreatePartnerUser(context.Background(), save.PartnerUserPayload{
		OrganizationID: "ORG-1578", FirstName: "Sara", LastName: "Ali",
		Mobile: "0501234567", Email: "sara@example.com",
	})

	assert.True(t, res.Success)
	assert.Equal(t, []string{"POST /users/partners", "POST /partner-users"}, srv.Keys())
	body := srv.Requests()[1].JSON(t)
	assert.InDelta(t, 1.0, body["role"], 1e-9)
	assert.Equal(t, "ar", body["language"])
}

type captureAudit struct{ entries []logging.AuditEntry }

func (c *captureAudit) Log(_ context.Context, e logging.AuditEntry) { c.entries = append(c.entries, e) }
func (c *captureAudit) Close() error                                { return nil }

func TestSave_WritesAuditEntry(t *testing.T) {
	srv := backendtest.New(t)
	srv.JSON("PUT /organizations/O1", http.StatusOK, `{"success":true}`)
	audit := &captureAudit{}
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	ctx := logging.ContextWithAuditLogger(logger.WithContext(context.Background()), audit)
	ctx = logging.ContextWithTraceID(ctx, "01HTRACE")

	res := save.NewCoordinator(srv.Client()).SaveOrganization(ctx, save.OrganizationPayload{OrganizationID: "O1", Name: "Acme"})

	require.True(t, res.Success)
	require.Len(t, audit.entries, 1)
	e := audit.entries[0]
	assert.Equal(t, "save_organization", e.Command)
	assert.Equal(t, "01HTRACE", e.TraceID)
	assert.Equal(t, "O1", e.EntityID)
	assert.Equal(t, "PUT /organizations/O1", e.Endpoint)
	assert.True(t, e.Success)
	assert.Contains(t, logs.String(), `"component":"save"`)
}

func TestForm_StateMachine(t *testing.T) {
	var f save.Form
	ctx := context.Background()
	errMissing := errors.New("name required")
	calls := 0
	submit := func(context.Context) save.Result {
		calls++
		return save.Result{Success: calls > 1, Message: "m"}
	}

	_, state, err := f.Run(ctx, func() error { return errMissing }, submit)
	require.ErrorIs(t, err, errMissing)
	assert.Equal(t, save.StateIdle, state)
	assert.Zero(t, calls, "validation failure sends nothing")

	res, state, err := f.Run(ctx, nil, submit)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, save.StateFailed, state)
	assert.Equal(t, save.StateIdle, f.State())

	_, state, err = f.Run(ctx, nil, submit)
	require.NoError(t, err)
	assert.Equal(t, save.StateSuccess, state)

	require.NoError(t, f.Begin(nil))
	assert.Equal(t, save.StateSaving, f.State())
	assert.ErrorIs(t, f.Begin(nil), save.ErrBusy)
	assert.Equal(t, save.StateSuccess, f.Finish(save.Result{Success: true}))
	f.Reset()
	assert.Equal(t, "idle", f.State().String())
}
