// Package catalog lists the candidate endpoint shapes for every resource the
// console reads or writes. Deployments of the backend disagree on query
// parameter spelling and nesting, so each logical request is an ordered
// fallback list handed to backend.Probe.
package catalog

import (
	"net/url"

	"github.com/ionenergy/ionctl/internal/backend"
)

// Resource collection paths.
const (
	ChargersPath      = "/chargers"
	ConnectorsPath    = "/connectors"
	TariffsPath       = "/tariffs"
	OrganizationsPath = "/organizations"
	LocationsPath     = "/locations"
)

func seg(id string) string {
	return url.PathEscape(id)
}

// ChargerOrganizations lists organizations that own chargers.
func ChargerOrganizations() []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get("/chargers/organizations"),
		backend.Get("/organizations/chargers"),
		backend.Get(OrganizationsPath),
	}
}

// LocationsByOrg lists the locations of one organization.
func LocationsByOrg(orgID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(LocationsPath, "organizationId", orgID),
		backend.Get(LocationsPath, "organization_id", orgID),
		backend.Get(OrganizationsPath + "/" + seg(orgID) + "/locations"),
	}
}

// ChargersByLocation lists the chargers installed at one location.
func ChargersByLocation(locationID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(ChargersPath, "locationId", locationID),
		backend.Get(ChargersPath, "location_id", locationID),
		backend.Get(LocationsPath + "/" + seg(locationID) + "/chargers"),
	}
}

// ConnectorsByCharger lists the connectors of one charger.
func ConnectorsByCharger(chargerID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(ConnectorsPath, "chargerId", chargerID),
		backend.Get(ConnectorsPath, "charger_id", chargerID),
		backend.Get(ChargersPath + "/" + seg(chargerID) + "/connectors"),
	}
}

// ChargerDetail reads one charger.
func ChargerDetail(chargerID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(ChargersPath + "/" + seg(chargerID)),
		backend.Get(ChargersPath, "chargerId", chargerID),
		backend.Get(ChargersPath, "charger_id", chargerID),
		backend.Get(ChargersPath + "/" + seg(chargerID) + "/details"),
	}
}

// ConnectorDetail reads one connector.
func ConnectorDetail(connectorID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(ConnectorsPath + "/" + seg(connectorID)),
		backend.Get(ConnectorsPath, "connectorId", connectorID),
		backend.Get(ConnectorsPath, "connector_id", connectorID),
		backend.Get(ConnectorsPath + "/" + seg(connectorID) + "/details"),
	}
}

// TariffByConnector reads the tariff attached to a connector.
func TariffByConnector(connectorID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(TariffsPath, "connectorId", connectorID),
		backend.Get(TariffsPath, "connector_id", connectorID),
		backend.Get(ConnectorsPath + "/" + seg(connectorID) + "/tariff"),
	}
}

// OrganizationDetail reads one organization.
func OrganizationDetail(orgID string) []backend.Endpoint {
	return []backend.Endpoint{
		backend.Get(OrganizationsPath + "/" + seg(orgID)),
		backend.Get(OrganizationsPath + "/" + seg(orgID) + "/details"),
		backend.Get(OrganizationsPath+"/details", "organizationId", orgID),
	}
}

// Save returns the write attempts for a resource collection: PUT to the
// member URL when id is set, otherwise POST to the collection, then the
// POST .../save fallback in both cases.
func Save(collection, id string) []backend.Endpoint {
	first := backend.Post(collection)
	if id != "" {
		first = backend.Put(collection + "/" + seg(id))
	}
	return []backend.Endpoint{first, backend.Post(collection + "/save")}
}

// CreatePartnerUser lists the endpoints that create a partner user.
func CreatePartnerUser() []backend.Endpoint {
	return []backend.Endpoint{
		backend.Post("/users/partners"),
		backend.Post("/partner-users"),
		backend.Post("/users/save"),
	}
}

// ChargersStatus returns the combined status endpoint.
func ChargersStatus() []backend.Endpoint {
	return []backend.Endpoint{backend.Get(ChargersPath + "/status")}
}

// OfflineChargers is the offline half of the split status endpoints.
func OfflineChargers() []backend.Endpoint {
	return []backend.Endpoint{backend.Get(ChargersPath + "/offline")}
}

// OnlineChargers is the online half of the split status endpoints.
func OnlineChargers() []backend.Endpoint {
	return []backend.Endpoint{backend.Get(ChargersPath + "/online")}
}

// Organizations lists every organization with its totals.
func Organizations() []backend.Endpoint {
	return []backend.Endpoint{backend.Get(OrganizationsPath)}
}

// LeadershipUsers lists the top users.
func LeadershipUsers() []backend.Endpoint {
	return []backend.Endpoint{backend.Get("/users/leadership")}
}

// FinancialReport posts the filter, falling back to a GET with the filter as
// query parameters.
func FinancialReport(query url.Values) []backend.Endpoint {
	get := backend.Get("/reports/financial")
	get.Query = query
	return []backend.Endpoint{backend.Post("/reports/financial"), get}
}
