package options

// Sentinel values standing for "create a new record" in a selection list.
const (
	NewOrganization = "__NEW_ORG__"
	NewCharger      = "__NEW_CHARGER__"
	NewConnector    = "__NEW_CONNECTOR__"
	NewTariff       = "__NEW_TARIFF__"
)

// Sentinel options as shown at the top of their lists.
//
//nolint:gochecknoglobals // Read-only option values.
var (
	NewOrganizationOption = SelectOption{Value: NewOrganization, Label: "--- New Organization ---"}
	NewChargerOption      = SelectOption{Value: NewCharger, Label: "--- New Charger ---"}
	NewConnectorOption    = SelectOption{Value: NewConnector, Label: "--- New Connector ---"}
	NewTariffOption       = SelectOption{Value: NewTariff, Label: "➕ Add New Tariff"}
)

// IsSentinel reports whether v is one of the "new record" sentinels.
func IsSentinel(v string) bool {
	switch v {
	case NewOrganization, NewCharger, NewConnector, NewTariff:
		return true
	}
	return false
}
