package detail

import "github.com/ionenergy/ionctl/internal/backend"

// ChargerDetail is the editable state of a charger.
type ChargerDetail struct {
	ChargerID      string `json:"charger_id,omitempty"`
	LocationID     string `json:"location_id,omitempty"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	MaxSessionTime *int   `json:"max_session_time,omitempty"`
	NumConnectors  *int   `json:"num_connectors,omitempty"`
	Description    string `json:"description"`
}

// ConnectorDetail is the editable state of a connector.
type ConnectorDetail struct {
	ConnectorID     string `json:"connector_id,omitempty"`
	ChargerID       string `json:"charger_id,omitempty"`
	ConnectorType   string `json:"connector_type"`
	Status          string `json:"status"`
	Power           string `json:"power"`
	PowerUnit       string `json:"power_unit"`
	TimeLimit       *int   `json:"time_limit,omitempty"`
	Pin             string `json:"pin"`
	OCPIStandard    string `json:"ocpi_standard"`
	OCPIFormat      string `json:"ocpi_format"`
	OCPIPowerType   string `json:"ocpi_power_type"`
	OCPIMaxVoltage  string `json:"ocpi_max_voltage"`
	OCPIMaxAmperage string `json:"ocpi_max_amperage"`
	OCPITariffIDs   string `json:"ocpi_tariff_ids"`
	StopOn80        bool   `json:"stop_on80"`
	Enabled         bool   `json:"enabled"`
}

// TariffDetail is the tariff attached to a connector.
type TariffDetail struct {
	TariffID          string  `json:"tariff_id,omitempty"`
	ConnectorID       string  `json:"connector_id,omitempty"`
	Type              string  `json:"type"`
	BuyRate           float64 `json:"buy_rate"`
	SellRate          float64 `json:"sell_rate"`
	TransactionFees   float64 `json:"transaction_fees"`
	ClientPercentage  float64 `json:"client_percentage"`
	PartnerPercentage float64 `json:"partner_percentage"`
	PeakType          string  `json:"peak_type"`
	Status            string  `json:"status"`
}

// OrganizationDetail is the editable state of an organization.
type OrganizationDetail struct {
	OrganizationID     string `json:"organization_id,omitempty"`
	Name               string `json:"name"`
	NameAr             string `json:"name_ar"`
	ContactFirstName   string `json:"contact_first_name"`
	ContactLastName    string `json:"contact_last_name"`
	ContactPhoneNumber string `json:"contact_phoneNumber"`
	Details            string `json:"details"`
}

// Field alias lists, most specific spelling first.
//
//nolint:gochecknoglobals // Read-only alias tables.
var (
	chargerIDKeys      = []string{"charger_id", "chargerID", "chargerId", "id"}
	connectorIDKeys    = []string{"connector_id", "connectorID", "connectorId", "id"}
	tariffIDKeys       = []string{"tariff_id", "tariffId", "tariffID", "id"}
	organizationIDKeys = []string{"organization_id", "organizationId", "id"}
	locationIDKeys     = []string{"location_id", "locationId"}
	statusKeys         = []string{"status", "Status"}
)

// DecodeCharger maps a backend record onto ChargerDetail.
func DecodeCharger(rec map[string]any) ChargerDetail {
	return ChargerDetail{
		ChargerID:      backend.String(rec, chargerIDKeys...),
		LocationID:     backend.String(rec, locationIDKeys...),
		Name:           backend.String(rec, "name", "charger_name", "chargerName", "Name"),
		Type:           backend.String(rec, "type", "charger_type", "chargerType"),
		Status:         backend.String(rec, statusKeys...),
		MaxSessionTime: backend.Int(rec, "max_session_time", "maxSessionTime"),
		NumConnectors:  backend.Int(rec, "num_connectors", "numConnectors", "connectors_count"),
		Description:    backend.String(rec, "description", "Description"),
	}
}

// DecodeConnector maps a backend record onto ConnectorDetail. Enabled
// defaults to true when the record does not say otherwise.
func DecodeConnector(rec map[string]any) ConnectorDetail {
	stop, _ := backend.Bool(rec, "stop_on80", "stop_on_80", "stopOn80")
	enabled, ok := backend.Bool(rec, "enabled", "is_enabled", "isEnabled")
	if !ok {
		enabled = true
	}
	return ConnectorDetail{
		ConnectorID:     backend.String(rec, connectorIDKeys...),
		ChargerID:       backend.String(rec, "charger_id", "chargerID", "chargerId"),
		ConnectorType:   backend.String(rec, "connector_type", "connectorType", "type"),
		Status:          backend.String(rec, statusKeys...),
		Power:           backend.String(rec, "power", "max_power"),
		PowerUnit:       backend.String(rec, "power_unit", "powerUnit"),
		TimeLimit:       backend.Int(rec, "time_limit", "timeLimit"),
		Pin:             backend.String(rec, "pin", "connector_pin"),
		OCPIStandard:    backend.String(rec, "ocpi_standard", "ocpiStandard"),
		OCPIFormat:      backend.String(rec, "ocpi_format", "ocpiFormat"),
		OCPIPowerType:   backend.String(rec, "ocpi_power_type", "ocpiPowerType"),
		OCPIMaxVoltage:  backend.String(rec, "ocpi_max_voltage", "ocpiMaxVoltage"),
		OCPIMaxAmperage: backend.String(rec, "ocpi_max_amperage", "ocpiMaxAmperage"),
		OCPITariffIDs:   backend.String(rec, "ocpi_tariff_ids", "ocpiTariffIds"),
		StopOn80:        stop,
		Enabled:         enabled,
	}
}

// DecodeTariff maps a backend record onto TariffDetail. Absent or
// non-numeric amounts read as 0.
func DecodeTariff(rec map[string]any) TariffDetail {
	return TariffDetail{
		TariffID:          backend.String(rec, tariffIDKeys...),
		ConnectorID:       backend.String(rec, "connector_id", "connectorId", "connectorID"),
		Type:              backend.String(rec, "type", "tariff_type", "tariffType"),
		BuyRate:           backend.NumberOrZero(rec, "buy_rate", "buyRate"),
		SellRate:          backend.NumberOrZero(rec, "sell_rate", "sellRate"),
		TransactionFees:   backend.NumberOrZero(rec, "transaction_fees", "transactionFees"),
		ClientPercentage:  backend.NumberOrZero(rec, "client_percentage", "clientPercentage"),
		PartnerPercentage: backend.NumberOrZero(rec, "partner_percentage", "partnerPercentage"),
		PeakType:          backend.String(rec, "peak_type", "peakType"),
		Status:            backend.String(rec, statusKeys...),
	}
}

// DecodeOrganization maps a backend record onto OrganizationDetail.
func DecodeOrganization(rec map[string]any) OrganizationDetail {
	return OrganizationDetail{
		OrganizationID:     backend.String(rec, organizationIDKeys...),
		Name:               backend.String(rec, "name", "organization_name", "organizationName"),
		NameAr:             backend.String(rec, "name_ar", "nameAr"),
		ContactFirstName:   backend.String(rec, "contact_first_name", "contactFirstName"),
		ContactLastName:    backend.String(rec, "contact_last_name", "contactLastName"),
		ContactPhoneNumber: backend.String(rec, "contact_phoneNumber", "contact_phone_number", "contactPhoneNumber"),
		Details:            backend.String(rec, "details", "description"),
	}
}

// NewConnectorDetail returns the defaults of an empty connector form.
func NewConnectorDetail() ConnectorDetail {
	return ConnectorDetail{Status: "available", Enabled: true}
}
