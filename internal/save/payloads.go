package save

import (
	"context"

	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/options"
)

// Default field values applied when a form leaves them blank.
const (
	DefaultChargerType     = "AC"
	DefaultChargerStatus   = "offline"
	DefaultConnectorStatus = "available"
	DefaultPartnerRole     = 1
	DefaultPartnerLanguage = "ar"
)

// ChargerPayload is a charger as edited in a form. An empty ChargerID
// creates a new charger.
type ChargerPayload struct {
	ChargerID      string
	LocationID     string
	Name           string
	Type           string
	Status         string
	MaxSessionTime *int
	NumConnectors  *int
	Description    string
}

type chargerBody struct {
	ChargerID      string `json:"charger_id,omitempty"`
	LocationID     string `json:"location_id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	MaxSessionTime *int   `json:"max_session_time,omitempty"`
	NumConnectors  *int   `json:"num_connectors,omitempty"`
	Description    string `json:"description"`
}

// Body returns the request body sent for p.
func (p ChargerPayload) Body() any {
	return chargerBody{
		ChargerID:      idOrEmpty(p.ChargerID),
		LocationID:     p.LocationID,
		Name:           p.Name,
		Type:           orDefault(p.Type, DefaultChargerType),
		Status:         orDefault(p.Status, DefaultChargerStatus),
		MaxSessionTime: p.MaxSessionTime,
		NumConnectors:  p.NumConnectors,
		Description:    p.Description,
	}
}

// SaveCharger creates or updates a charger.
func (c *Coordinator) SaveCharger(ctx context.Context, p ChargerPayload) Result {
	return c.Save(ctx, Charger, idOrEmpty(p.ChargerID), p.Body())
}

// ConnectorPayload is a connector as edited in a form.
type ConnectorPayload struct {
	ConnectorID     string
	ChargerID       string
	ConnectorType   string
	Status          string
	Power           string
	PowerUnit       string
	TimeLimit       *int
	Pin             string
	OCPIStandard    string
	OCPIFormat      string
	OCPIPowerType   string
	OCPIMaxVoltage  string
	OCPIMaxAmperage string
	OCPITariffIDs   string
	StopOn80        bool
	// Disabled is inverted so the zero value saves an enabled connector.
	Disabled bool
}

type connectorBody struct {
	ConnectorID     string `json:"connector_id,omitempty"`
	ChargerID       string `json:"charger_id"`
	ConnectorType   string `json:"connector_type"`
	Status          string `json:"status"`
	Power           string `json:"power,omitempty"`
	PowerUnit       string `json:"power_unit,omitempty"`
	TimeLimit       *int   `json:"time_limit,omitempty"`
	Pin             string `json:"pin,omitempty"`
	OCPIStandard    string `json:"ocpi_standard,omitempty"`
	OCPIFormat      string `json:"ocpi_format,omitempty"`
	OCPIPowerType   string `json:"ocpi_power_type,omitempty"`
	OCPIMaxVoltage  string `json:"ocpi_max_voltage,omitempty"`
	OCPIMaxAmperage string `json:"ocpi_max_amperage,omitempty"`
	OCPITariffIDs   string `json:"ocpi_tariff_ids,omitempty"`
	StopOn80        bool   `json:"stop_on80"`
	Enabled         bool   `json:"enabled"`
}

// Body returns the request body sent for p.
func (p ConnectorPayload) Body() any {
	return connectorBody{
		ConnectorID:     idOrEmpty(p.ConnectorID),
		ChargerID:       p.ChargerID,
		ConnectorType:   p.ConnectorType,
		Status:          orDefault(p.Status, DefaultConnectorStatus),
		Power:           p.Power,
		PowerUnit:       p.PowerUnit,
		TimeLimit:       p.TimeLimit,
		Pin:             p.Pin,
		OCPIStandard:    p.OCPIStandard,
		OCPIFormat:      p.OCPIFormat,
		OCPIPowerType:   p.OCPIPowerType,
		OCPIMaxVoltage:  p.OCPIMaxVoltage,
		OCPIMaxAmperage: p.OCPIMaxAmperage,
		OCPITariffIDs:   p.OCPITariffIDs,
		StopOn80:        p.StopOn80,
		Enabled:         !p.Disabled,
	}
}

// SaveConnector creates or updates a connector.
func (c *Coordinator) SaveConnector(ctx context.Context, p ConnectorPayload) Result {
	return c.Save(ctx, Connector, idOrEmpty(p.ConnectorID), p.Body())
}

// TariffPayload is a connector's tariff as edited in a form.
type TariffPayload struct {
	TariffID          string
	ConnectorID       string
	Type              string
	BuyRate           float64
	SellRate          float64
	TransactionFees   float64
	ClientPercentage  float64
	PartnerPercentage float64
	PeakType          string
	Status            string
}

type tariffBody struct {
	TariffID          string   `json:"tariff_id,omitempty"`
	ConnectorID       string   `json:"connector_id"`
	Type              string   `json:"type"`
	BuyRate           float64  `json:"buy_rate"`
	SellRate          float64  `json:"sell_rate"`
	TransactionFees   *float64 `json:"transaction_fees,omitempty"`
	ClientPercentage  *float64 `json:"client_percentage,omitempty"`
	PartnerPercentage *float64 `json:"partner_percentage,omitempty"`
	PeakType          string   `json:"peak_type,omitempty"`
	Status            string   `json:"status,omitempty"`
}

// Body returns the request body sent for p. Zero fees and percentages are
// left out.
func (p TariffPayload) Body() any {
	return tariffBody{
		TariffID:          idOrEmpty(p.TariffID),
		ConnectorID:       p.ConnectorID,
		Type:              p.Type,
		BuyRate:           p.BuyRate,
		SellRate:          p.SellRate,
		TransactionFees:   nonZero(p.TransactionFees),
		ClientPercentage:  nonZero(p.ClientPercentage),
		PartnerPercentage: nonZero(p.PartnerPercentage),
		PeakType:          p.PeakType,
		Status:            p.Status,
	}
}

// SaveTariff creates or updates a tariff.
func (c *Coordinator) SaveTariff(ctx context.Context, p TariffPayload) Result {
	return c.Save(ctx, Tariff, idOrEmpty(p.TariffID), p.Body())
}

// OrganizationPayload is an organization as edited in a form.
type OrganizationPayload struct {
	OrganizationID     string
	Name               string
	NameAr             string
	ContactFirstName   string
	ContactLastName    string
	ContactPhoneNumber string
	Details            string
}

type organizationBody struct {
	OrganizationID     string `json:"organization_id,omitempty"`
	Name               string `json:"name"`
	NameAr             string `json:"name_ar"`
	ContactFirstName   string `json:"contact_first_name"`
	ContactLastName    string `json:"contact_last_name"`
	ContactPhoneNumber string `json:"contact_phoneNumber"`
	Details            string `json:"details"`
}

// Body returns the request body sent for p.
func (p OrganizationPayload) Body() any {
	return organizationBody{
		OrganizationID:     idOrEmpty(p.OrganizationID),
		Name:               p.Name,
		NameAr:             p.NameAr,
		ContactFirstName:   p.ContactFirstName,
		ContactLastName:    p.ContactLastName,
		ContactPhoneNumber: p.ContactPhoneNumber,
		Details:            p.Details,
	}
}

// SaveOrganization creates or updates an organization.
func (c *Coordinator) SaveOrganization(ctx context.Context, p OrganizationPayload) Result {
	return c.Save(ctx, Organization, idOrEmpty(p.OrganizationID), p.Body())
}

// PartnerUserPayload is a new partner user.
type PartnerUserPayload struct {
	OrganizationID string
	FirstName      string
	LastName       string
	Mobile         string
	Email          string
	Role           int
	Language       string
}

type partnerUserBody struct {
	OrganizationID string `json:"organization_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
	Role           int    `json:"role"`
	Language       string `json:"language"`
}

// Body returns the request body sent for p.
func (p PartnerUserPayload) Body() any {
	role := p.Role
	if role == 0 {
		role = DefaultPartnerRole
	}
	return partnerUserBody{
		OrganizationID: p.OrganizationID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Mobile:         p.Mobile,
		Email:          p.Email,
		Role:           role,
		Language:       orDefault(p.Language, DefaultPartnerLanguage),
	}
}

// CreatePartnerUser creates a partner user. Partner users are never updated
// from the console.
func (c *Coordinator) CreatePartnerUser(ctx context.Context, p PartnerUserPayload) Result {
	return c.Submit(ctx, PartnerUser, "", catalog.CreatePartnerUser(), p.Body())
}

// idOrEmpty maps "new record" sentinels to the empty id.
func idOrEmpty(id string) string {
	if options.IsSentinel(id) {
		return ""
	}
	return id
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
