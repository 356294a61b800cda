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

// Tariffs edits the tariff attached to a connector. The connector level
// offers "add new tariff" instead of "new connector".
type Tariffs struct {
	base

	Draft detail.TariffDetail

	loader *detail.Loader[detail.TariffDetail]
	saver  *save.Coordinator
}

// NewTariffs builds the tariffs page.
func NewTariffs(env Env) *Tariffs {
	env = env.withDefaults()
	return &Tariffs{
		base:   base{env: env, name: "tariffs", chain: env.chain(LevelConnector+1, &options.NewTariffOption)},
		loader: detail.Tariffs(env.Client),
		saver:  save.NewCoordinator(env.Client),
	}
}

// DetailLevel is the connector level.
func (p *Tariffs) DetailLevel() int { return LevelConnector }

// Open has nothing to load besides the chain.
func (p *Tariffs) Open() Task { return nil }

// Detail loads the tariff of the selected connector. A connector without a
// tariff opens an empty form.
func (p *Tariffs) Detail() Task {
	id := p.chain.Selected(LevelConnector)
	if p.chain.Level(LevelConnector).IsBlank(id) {
		return local(func() { p.Draft = detail.TariffDetail{} })
	}
	return func(ctx context.Context) Apply {
		d := p.loader.Load(ctx, id)
		return func() *cascade.Fetch {
			if p.chain.Selected(LevelConnector) != id {
				return nil
			}
			if d == nil {
				p.Draft = detail.TariffDetail{}
				p.notify(notify.KindInfo, intl.TariffNotFound)
				return nil
			}
			p.Draft = *d
			return nil
		}
	}
}

// Fields exposes the tariff draft.
func (p *Tariffs) Fields() []Field {
	d := &p.Draft
	return []Field{
		textField("type", "Type", &d.Type),
		amountField("buy_rate", "Buy rate", &d.BuyRate),
		amountField("sell_rate", "Sell rate", &d.SellRate),
		amountField("transaction_fees", "Transaction fees", &d.TransactionFees),
		amountField("client_percentage", "Client %", &d.ClientPercentage),
		amountField("partner_percentage", "Partner %", &d.PartnerPercentage),
		textField("peak_type", "Peak type", &d.PeakType),
		textField("status", "Status", &d.Status),
	}
}

// Payload is the save request for the current draft.
func (p *Tariffs) Payload() save.TariffPayload {
	d := p.Draft
	return save.TariffPayload{
		TariffID:          d.TariffID,
		ConnectorID:       p.chain.Selected(LevelConnector),
		Type:              d.Type,
		BuyRate:           d.BuyRate,
		SellRate:          d.SellRate,
		TransactionFees:   d.TransactionFees,
		ClientPercentage:  d.ClientPercentage,
		PartnerPercentage: d.PartnerPercentage,
		PeakType:          d.PeakType,
		Status:            d.Status,
	}
}

// Submit saves the tariff. A connector must be selected.
func (p *Tariffs) Submit() (Task, error) {
	input := forms.TariffInput{
		ConnectorID: p.chain.Selected(LevelConnector),
		Type:        p.Draft.Type,
		BuyRate:     p.Draft.BuyRate,
		SellRate:    p.Draft.SellRate,
	}
	payload := p.Payload()
	return p.submit(input,
		func(ctx context.Context) save.Result { return p.saver.SaveTariff(ctx, payload) },
		nil)
}
