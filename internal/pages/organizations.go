package pages

import (
	"context"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/detail"
	"github.com/ionenergy/ionctl/internal/forms"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/options"
	"github.com/ionenergy/ionctl/internal/save"
)

// Organizations lists organizations with their totals and edits one at a
// time. Its chain has a single level.
type Organizations struct {
	base

	Draft detail.OrganizationDetail
	// Overview is the organizations table.
	Overview    []dashboard.Organization
	OverviewErr error

	loader *detail.Loader[detail.OrganizationDetail]
	saver  *save.Coordinator
	board  *dashboard.Service
}

// NewOrganizations builds the organizations page.
func NewOrganizations(env Env) *Organizations {
	env = env.withDefaults()
	f := options.NewFetcher(env.Client)
	title, desc := env.Localizer.Pair(intl.OrganizationsLoadFailed)
	chain := cascade.New(env.Notifier, cascade.Level{
		Name: "organization",
		Load: f.Loader("organizations", func(string) []backend.Endpoint {
			return catalog.Organizations()
		}, false),
		New:             &options.NewOrganizationOption,
		FailTitle:       title,
		FailDescription: desc,
	})
	return &Organizations{
		base:   base{env: env, name: "organizations", chain: chain},
		loader: detail.Organizations(env.Client),
		saver:  save.NewCoordinator(env.Client),
		board:  dashboard.New(env.Client),
	}
}

// DetailLevel is the only level.
func (p *Organizations) DetailLevel() int { return 0 }

// Open loads the overview table.
func (p *Organizations) Open() Task {
	return func(ctx context.Context) Apply {
		apply := p.fetchOverview(ctx)
		return func() *cascade.Fetch {
			apply()
			return nil
		}
	}
}

func (p *Organizations) fetchOverview(ctx context.Context) func() {
	rows, err := p.board.Organizations(ctx)
	return func() { p.Overview, p.OverviewErr = rows, err }
}

// Detail loads the selected organization. When the backend has no detail
// record the name is taken from the option list.
func (p *Organizations) Detail() Task {
	id := p.chain.Selected(0)
	if p.chain.Level(0).IsBlank(id) {
		return local(func() {
			p.Draft = detail.OrganizationDetail{}
			p.missing = false
		})
	}
	return func(ctx context.Context) Apply {
		d := p.loader.Load(ctx, id)
		return func() *cascade.Fetch {
			if p.chain.Selected(0) != id {
				return nil
			}
			// A partial draft carries the name only.
			p.missing = d == nil
			switch {
			case d != nil:
				p.Draft = *d
				p.notify(notify.KindSuccess, intl.OrganizationLoaded)
			default:
				if opt, ok := options.Find(p.chain.Options(0), id); ok {
					p.Draft = detail.OrganizationDetail{OrganizationID: id, Name: opt.Label}
					p.notify(notify.KindInfo, intl.OrganizationPartial)
				} else {
					p.Draft = detail.OrganizationDetail{}
					p.notify(notify.KindWarning, intl.OrganizationNotFound)
				}
			}
			return nil
		}
	}
}

// Fields exposes the organization draft.
func (p *Organizations) Fields() []Field {
	d := &p.Draft
	return []Field{
		textField("name", "Name", &d.Name),
		textField("name_ar", "Arabic name", &d.NameAr),
		textField("contact_first_name", "Contact first name", &d.ContactFirstName),
		textField("contact_last_name", "Contact last name", &d.ContactLastName),
		textField("contact_phoneNumber", "Contact phone", &d.ContactPhoneNumber),
		textField("details", "Details", &d.Details),
	}
}

// Payload is the save request for the current draft.
func (p *Organizations) Payload() save.OrganizationPayload {
	d := p.Draft
	return save.OrganizationPayload{
		OrganizationID:     p.existing(0),
		Name:               d.Name,
		NameAr:             d.NameAr,
		ContactFirstName:   d.ContactFirstName,
		ContactLastName:    d.ContactLastName,
		ContactPhoneNumber: d.ContactPhoneNumber,
		Details:            d.Details,
	}
}

// Submit saves the draft. On success the overview and the option list are
// reloaded and "new organization" is selected.
func (p *Organizations) Submit() (Task, error) {
	payload := p.Payload()
	return p.submit(forms.OrganizationInput{Name: p.Draft.Name},
		func(ctx context.Context) save.Result { return p.saver.SaveOrganization(ctx, payload) },
		func(ctx context.Context) Apply {
			apply := p.fetchOverview(ctx)
			return func() *cascade.Fetch {
				apply()
				p.Draft = detail.OrganizationDetail{}
				return p.chain.BeginReload(0)
			}
		})
}
