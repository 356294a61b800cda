package pages

import (
	"context"
	"strconv"

	"github.com/ionenergy/ionctl/internal/cascade"
	"github.com/ionenergy/ionctl/internal/dashboard"
	"github.com/ionenergy/ionctl/internal/forms"
	"github.com/ionenergy/ionctl/internal/save"
)

// PartnerDraft is a partner user being added.
type PartnerDraft struct {
	FirstName string
	LastName  string
	Mobile    string
	Email     string
	Role      int
	Language  string
}

// Partner roles.
const (
	RoleAdmin      = 1
	RoleOperator   = 2
	RoleAccountant = 3
)

// Users shows the leadership board and adds partner users to the selected
// organization. The full chain doubles as the board's filter.
type Users struct {
	base

	Draft PartnerDraft
	// Leaders is the leadership board.
	Leaders    []dashboard.LeadershipUser
	LeadersErr error

	saver *save.Coordinator
	board *dashboard.Service
}

// NewUsers builds the users page.
func NewUsers(env Env) *Users {
	env = env.withDefaults()
	return &Users{
		base:  base{env: env, name: "users", chain: env.chain(LevelConnector+1, nil)},
		Draft: newPartnerDraft(),
		saver: save.NewCoordinator(env.Client),
		board: dashboard.New(env.Client),
	}
}

func newPartnerDraft() PartnerDraft {
	return PartnerDraft{Role: save.DefaultPartnerRole, Language: save.DefaultPartnerLanguage}
}

// DetailLevel reports that users have no detail record.
func (p *Users) DetailLevel() int { return NoDetail }

// Open loads the leadership board.
func (p *Users) Open() Task {
	return func(ctx context.Context) Apply {
		rows, err := p.board.LeadershipUsers(ctx)
		return func() *cascade.Fetch {
			p.Leaders, p.LeadersErr = rows, err
			return nil
		}
	}
}

// Detail is a no-op.
func (p *Users) Detail() Task { return nil }

// Fields exposes the partner draft.
func (p *Users) Fields() []Field {
	d := &p.Draft
	return []Field{
		textField("first_name", "First name", &d.FirstName),
		textField("last_name", "Last name", &d.LastName),
		textField("mobile", "Mobile", &d.Mobile),
		textField("email", "Email", &d.Email),
		{
			Key:   "role",
			Label: "Role (1 admin, 2 operator, 3 accountant)",
			Get:   func() string { return strconv.Itoa(d.Role) },
			Set: func(s string) error {
				var n *int
				if err := intField("role", "", &n).Set(s); err != nil {
					return err
				}
				d.Role = save.DefaultPartnerRole
				if n != nil {
					d.Role = *n
				}
				return nil
			},
		},
		textField("language", "Language", &d.Language),
	}
}

// Payload is the create request for the current draft.
func (p *Users) Payload() save.PartnerUserPayload {
	d := p.Draft
	return save.PartnerUserPayload{
		OrganizationID: p.existing(LevelOrganization),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Mobile:         d.Mobile,
		Email:          d.Email,
		Role:           d.Role,
		Language:       d.Language,
	}
}

// Submit creates the partner user and clears the draft on success.
func (p *Users) Submit() (Task, error) {
	d := p.Draft
	input := forms.PartnerUserInput{
		OrganizationID: p.existing(LevelOrganization),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Mobile:         d.Mobile,
		Email:          d.Email,
	}
	payload := p.Payload()
	return p.submit(input,
		func(ctx context.Context) save.Result { return p.saver.CreatePartnerUser(ctx, payload) },
		func(context.Context) Apply {
			return func() *cascade.Fetch {
				p.Draft = newPartnerDraft()
				return nil
			}
		})
}
