package catalog_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
)

func strs(eps []backend.Endpoint) []string {
	out := make([]string, len(eps))
	for i, ep := range eps {
		out[i] = ep.String()
	}
	return out
}

func TestCandidateOrder(t *testing.T) {
	assert.Equal(t, []string{
		"GET /locations?organizationId=ORG-1578",
		"GET /locations?organization_id=ORG-1578",
		"GET /organizations/ORG-1578/locations",
	}, strs(catalog.LocationsByOrg("ORG-1578")))

	assert.Equal(t, []string{
		"GET /chargers/C%2F1",
		"GET /chargers?chargerId=C%2F1",
		"GET /chargers?charger_id=C%2F1",
		"GET /chargers/C%2F1/details",
	}, strs(catalog.ChargerDetail("C/1")))

	assert.Equal(t, []string{
		"GET /tariffs?connectorId=K1",
		"GET /tariffs?connector_id=K1",
		"GET /connectors/K1/tariff",
	}, strs(catalog.TariffByConnector("K1")))
}

func TestSave(t *testing.T) {
	assert.Equal(t, []string{"POST /chargers", "POST /chargers/save"},
		strs(catalog.Save(catalog.ChargersPath, "")))
	assert.Equal(t, []string{"PUT /chargers/CHG-9", "POST /chargers/save"},
		strs(catalog.Save(catalog.ChargersPath, "CHG-9")))
}

func TestFinancialReport(t *testing.T) {
	q := url.Values{"period": {"1"}}
	assert.Equal(t, []string{"POST /reports/financial", "GET /reports/financial?period=1"},
		strs(catalog.FinancialReport(q)))
}
