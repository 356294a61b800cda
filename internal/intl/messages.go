package intl

import "github.com/ionenergy/ionctl/internal/notify"

// Message pair ids. Each has a .Title and usually a .Description.
const (
	OrganizationsLoadFailed = "Organizations.LoadFailed"
	LocationsLoadFailed     = "Locations.LoadFailed"
	ChargersLoadFailed      = "Chargers.LoadFailed"
	ConnectorsLoadFailed    = "Connectors.LoadFailed"

	ChargerNotFound      = "ChargerDetail.NotFound"
	ConnectorNotFound    = "ConnectorDetail.NotFound"
	TariffNotFound       = "TariffDetail.NotFound"
	OrganizationLoaded   = "OrganizationDetail.Loaded"
	OrganizationPartial  = "OrganizationDetail.Partial"
	OrganizationNotFound = "OrganizationDetail.NotFound"

	OrganizationRequired     = "Validation.OrganizationRequired"
	LocationRequired         = "Validation.LocationRequired"
	ChargerNameRequired      = "Validation.ChargerNameRequired"
	ChargerRequired          = "Validation.ChargerRequired"
	ConnectorTypeRequired    = "Validation.ConnectorTypeRequired"
	ConnectorRequired        = "Validation.ConnectorRequired"
	TariffFieldsRequired     = "Validation.TariffFieldsRequired"
	OrganizationNameRequired = "Validation.OrganizationNameRequired"
	PartnerFieldsRequired    = "Validation.PartnerFieldsRequired"
	EmailInvalid             = "Validation.EmailInvalid"
	FieldInvalid             = "Validation.FieldInvalid"

	SaveSucceeded  = "Save.Succeeded"
	SaveFailed     = "Save.Failed"
	SaveUnexpected = "Save.Unexpected"

	ReportsEmpty  = "Reports.Empty"
	ReportsFailed = "Reports.Failed"
)

// Single-string message ids.
const (
	StatusOffline = "Status.Offline"
	StatusOnline  = "Status.Online"
	StatusEmpty   = "Status.Empty"

	LabelOrganization = "Labels.Organization"
	LabelLocation     = "Labels.Location"
	LabelCharger      = "Labels.Charger"
	LabelConnector    = "Labels.Connector"
	LabelLoading      = "Labels.Loading"
	LabelSaving       = "Labels.Saving"
	LabelRows         = "Labels.Rows"
)

// Notify sends the message pair id to n.
func (l *Localizer) Notify(n notify.Notifier, kind notify.Kind, id string) {
	title, desc := l.Pair(id)
	n.Notify(notify.Notification{Kind: kind, Title: title, Description: desc})
}

// NotifyWith sends id's title with a caller-supplied description, such as a
// backend message.
func (l *Localizer) NotifyWith(n notify.Notifier, kind notify.Kind, id, description string) {
	n.Notify(notify.Notification{Kind: kind, Title: l.T(id + ".Title"), Description: description})
}
