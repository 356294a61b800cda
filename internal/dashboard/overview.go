package dashboard

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
)

// Organization is one row of the organizations overview.
type Organization struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Energy float64 `json:"energy"`
}

// LeadershipUser is one row of the leadership board.
type LeadershipUser struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Count     int     `json:"count"`
	Mobile    string  `json:"mobile"`
	Energy    float64 `json:"energy"`
	Amount    float64 `json:"amount"`
}

// FullName joins first and last name.
func (u LeadershipUser) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// DecodeOrganizations maps overview rows, dropping rows without an id.
func DecodeOrganizations(rows []any) []Organization {
	out := make([]Organization, 0, len(rows))
	for _, r := range backend.Objects(rows) {
		o := Organization{
			ID:     backend.String(r, "id", "organization_id", "organizationId", "ID"),
			Name:   backend.String(r, "name", "organization_name", "organizationName", "Name"),
			Amount: backend.NumberOrZero(r, "amount", "total_amount", "totalAmount"),
			Energy: backend.NumberOrZero(r, "energy", "total_energy", "totalEnergy", "kwh"),
		}
		if o.ID == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// DecodeLeadership maps leadership rows and orders them by session count,
// highest first.
func DecodeLeadership(rows []any) []LeadershipUser {
	out := make([]LeadershipUser, 0, len(rows))
	for _, r := range backend.Objects(rows) {
		u := LeadershipUser{
			FirstName: backend.String(r, "firstName", "first_name"),
			LastName:  backend.String(r, "lastName", "last_name"),
			Mobile:    backend.String(r, "mobile", "phone", "phone_number"),
			Energy:    backend.NumberOrZero(r, "energy", "total_energy"),
			Amount:    backend.NumberOrZero(r, "amount", "total_amount"),
		}
		if n := backend.Int(r, "count", "sessions", "session_count"); n != nil {
			u.Count = *n
		}
		if u.FullName() == "" && u.Mobile == "" {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Organizations lists organizations with their totals.
func (s *Service) Organizations(ctx context.Context) ([]Organization, error) {
	rows, _, err := backend.Probe(ctx, s.client, "organizations_overview", catalog.Organizations(), nil,
		backend.RequireOK(backend.RowsAccept))
	if err != nil {
		return []Organization{}, err
	}
	return DecodeOrganizations(rows), nil
}

// LeadershipUsers lists the most active users.
func (s *Service) LeadershipUsers(ctx context.Context) ([]LeadershipUser, error) {
	rows, _, err := backend.Probe(ctx, s.client, "leadership_users", catalog.LeadershipUsers(), nil,
		backend.RequireOK(backend.RowsAccept))
	if err != nil {
		return []LeadershipUser{}, err
	}
	return DecodeLeadership(rows), nil
}

// Overview holds every panel. A panel that failed is empty and its error is
// kept in Errors under the panel name.
type Overview struct {
	Status        StatusView       `json:"status"`
	Organizations []Organization   `json:"organizations"`
	Leaders       []LeadershipUser `json:"leaders"`
	Errors        map[string]error `json:"-"`
}

// Overview panel names.
const (
	PanelStatus        = "status"
	PanelOrganizations = "organizations"
	PanelLeaders       = "leaders"
)

// Overview loads every panel concurrently. Panel failures never cancel the
// other panels.
func (s *Service) Overview(ctx context.Context) Overview {
	var (
		out                           Overview
		statusErr, orgErr, leadersErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Status, statusErr = s.ChargerStatus(gctx)
		return nil
	})
	g.Go(func() error {
		out.Organizations, orgErr = s.Organizations(gctx)
		return nil
	})
	g.Go(func() error {
		out.Leaders, leadersErr = s.LeadershipUsers(gctx)
		return nil
	})
	_ = g.Wait()

	out.Errors = map[string]error{}
	for name, err := range map[string]error{
		PanelStatus:        statusErr,
		PanelOrganizations: orgErr,
		PanelLeaders:       leadersErr,
	} {
		if err != nil {
			out.Errors[name] = err
		}
	}
	if len(out.Errors) > 0 {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "dashboard").
			Str("operation", "overview").
			Int("failed_panels", len(out.Errors)).
			Msg("overview partially loaded")
	}
	return out
}
