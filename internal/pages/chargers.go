package pages

import (
	"context"

	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/forms"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/save"
)

// Chargers edits chargers under organization → location and shows the
// connectivity panel.
type Chargers struct {
	base

	// Draft is the charger being edited.
	Draft detail.ChargerDetail
	// Status is the last loaded connectivity panel.
	Status    dashboard.StatusView
	StatusErr error

	loader *detail.Loader[detail.ChargerDetail]
	saver  *save.Coordinator
	board  *dashboard.Service
}

// NewChargers builds the chargers page.
func NewChargers(env Env) *Chargers {
	env = env.withDefaults()
	return &Chargers{
		base:   base{env: env, name: "chargers", chain: env.chain(LevelCharger+1, &options.NewChargerOption)},
		loader: detail.Chargers(env.Client),
		saver:  save.NewCoordinator(env.Client),
		board:  dashboard.New(env.Client),
	}
}

// DetailLevel is the charger level.
func (p *Chargers) DetailLevel() int { return LevelCharger }

// Open loads the connectivity panel.
func (p *Chargers) Open() Task {
	return func(ctx context.Context) Apply {
		apply := p.fetchStatus(ctx)
		return func() *cascade.Fetch {
			apply()
			return nil
		}
	}
}

func (p *Chargers) fetchStatus(ctx context.Context) func() {
	view, err := p.board.ChargerStatus(ctx)
	return func() {
		p.Status, p.StatusErr = view, err
	}
}

// Detail loads the selected charger. The sentinel opens an empty form; a
// charger that cannot be read opens an empty form with a notice.
func (p *Chargers) Detail() Task {
	id := p.chain.Selected(LevelCharger)
	if p.chain.Level(LevelCharger).IsBlank(id) {
		return local(func() {
			p.Draft = detail.ChargerDetail{}
			p.missing = false
		})
	}
	return func(ctx context.Context) Apply {
		d := p.loader.Load(ctx, id)
		return func() *cascade.Fetch {
			if p.chain.Selected(LevelCharger) != id {
				return nil
			}
			p.missing = d == nil
			if d == nil {
				p.Draft = detail.ChargerDetail{}
				p.notify(notify.KindInfo, intl.ChargerNotFound)
				return nil
			}
			p.Draft = *d
			return nil
		}
	}
}

// Fields exposes the charger draft.
func (p *Chargers) Fields() []Field {
	return []Field{
		textField("name", "Name", &p.Draft.Name),
		textField("type", "Type", &p.Draft.Type),
		textField("status", "Status", &p.Draft.Status),
		intField("max_session_time", "Max session time (min)", &p.Draft.MaxSessionTime),
		intField("num_connectors", "Connectors", &p.Draft.NumConnectors),
		textField("description", "Description", &p.Draft.Description),
	}
}

// Payload is the save request for the current draft and selections.
func (p *Chargers) Payload() save.ChargerPayload {
	return save.ChargerPayload{
		ChargerID:      p.existing(LevelCharger),
		LocationID:     p.existing(LevelLocation),
		Name:           p.Draft.Name,
		Type:           p.Draft.Type,
		Status:         p.Draft.Status,
		MaxSessionTime: p.Draft.MaxSessionTime,
		NumConnectors:  p.Draft.NumConnectors,
		Description:    p.Draft.Description,
	}
}

// Submit saves the draft. On success the connectivity panel and the
// charger list are reloaded and the selection returns to "new charger".
func (p *Chargers) Submit() (Task, error) {
	input := forms.ChargerInput{
		OrganizationID: p.existing(LevelOrganization),
		LocationID:     p.existing(LevelLocation),
		Name:           p.Draft.Name,
	}
	payload := p.Payload()
	return p.submit(input,
		func(ctx context.Context) save.Result { return p.saver.SaveCharger(ctx, payload) },
		func(ctx context.Context) Apply {
			apply := p.fetchStatus(ctx)
			return func() *cascade.Fetch {
				apply()
				p.Draft = detail.ChargerDetail{}
				return p.chain.BeginReload(LevelCharger)
			}
		})
}
