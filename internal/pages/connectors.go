package pages

import (
	"context"

	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/forms"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/save"
)

// Connectors edits the connectors of a charger.
type Connectors struct {
	base

	Draft detail.ConnectorDetail

	loader *detail.Loader[detail.ConnectorDetail]
	saver  *save.Coordinator
}

// NewConnectors builds the connectors page.
func NewConnectors(env Env) *Connectors {
	env = env.withDefaults()
	return &Connectors{
		base:   base{env: env, name: "connectors", chain: env.chain(LevelConnector+1, &options.NewConnectorOption)},
		Draft:  detail.NewConnectorDetail(),
		loader: detail.Connectors(env.Client),
		saver:  save.NewCoordinator(env.Client),
	}
}

// DetailLevel is the connector level.
func (p *Connectors) DetailLevel() int { return LevelConnector }

// Open has nothing to load besides the chain.
func (p *Connectors) Open() Task { return nil }

// Detail loads the selected connector.
func (p *Connectors) Detail() Task {
	id := p.chain.Selected(LevelConnector)
	if p.chain.Level(LevelConnector).IsBlank(id) {
		return local(func() {
			p.Draft = detail.NewConnectorDetail()
			p.missing = false
		})
	}
	return func(ctx context.Context) Apply {
		d := p.loader.Load(ctx, id)
		return func() *cascade.Fetch {
			if p.chain.Selected(LevelConnector) != id {
				return nil
			}
			p.missing = d == nil
			if d == nil {
				p.Draft = detail.NewConnectorDetail()
				p.notify(notify.KindError, intl.ConnectorNotFound)
				return nil
			}
			p.Draft = *d
			return nil
		}
	}
}

// Fields exposes the connector draft.
func (p *Connectors) Fields() []Field {
	d := &p.Draft
	return []Field{
		textField("connector_type", "Connector type", &d.ConnectorType),
		textField("status", "Status", &d.Status),
		textField("power", "Power", &d.Power),
		textField("power_unit", "Power unit", &d.PowerUnit),
		intField("time_limit", "Time limit (min)", &d.TimeLimit),
		textField("pin", "PIN", &d.Pin),
		textField("ocpi_standard", "OCPI standard", &d.OCPIStandard),
		textField("ocpi_format", "OCPI format", &d.OCPIFormat),
		textField("ocpi_power_type", "OCPI power type", &d.OCPIPowerType),
		textField("ocpi_max_voltage", "OCPI max voltage", &d.OCPIMaxVoltage),
		textField("ocpi_max_amperage", "OCPI max amperage", &d.OCPIMaxAmperage),
		textField("ocpi_tariff_ids", "OCPI tariff ids", &d.OCPITariffIDs),
		boolField("stop_on80", "Stop at 80%", &d.StopOn80),
		boolField("enabled", "Enabled", &d.Enabled),
	}
}

// Payload is the save request for the current draft.
func (p *Connectors) Payload() save.ConnectorPayload {
	d := p.Draft
	return save.ConnectorPayload{
		ConnectorID:     p.existing(LevelConnector),
		ChargerID:       p.existing(LevelCharger),
		ConnectorType:   d.ConnectorType,
		Status:          d.Status,
		Power:           d.Power,
		PowerUnit:       d.PowerUnit,
		TimeLimit:       d.TimeLimit,
		Pin:             d.Pin,
		OCPIStandard:    d.OCPIStandard,
		OCPIFormat:      d.OCPIFormat,
		OCPIPowerType:   d.OCPIPowerType,
		OCPIMaxVoltage:  d.OCPIMaxVoltage,
		OCPIMaxAmperage: d.OCPIMaxAmperage,
		OCPITariffIDs:   d.OCPITariffIDs,
		StopOn80:        d.StopOn80,
		Disabled:        !d.Enabled,
	}
}

// Submit saves the draft and, on success, reloads the connector list with
// "new connector" selected.
func (p *Connectors) Submit() (Task, error) {
	input := forms.ConnectorInput{
		ChargerID:     p.existing(LevelCharger),
		ConnectorType: p.Draft.ConnectorType,
	}
	payload := p.Payload()
	return p.submit(input,
		func(ctx context.Context) save.Result { return p.saver.SaveConnector(ctx, payload) },
		func(context.Context) Apply {
			return func() *cascade.Fetch {
				p.Draft = detail.NewConnectorDetail()
				return p.chain.BeginReload(LevelConnector)
			}
		})
}
