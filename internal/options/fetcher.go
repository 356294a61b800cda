package options

import (
	"context"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
)

// Source builds the candidate endpoints for a parent id.
type Source func(parentID string) []backend.Endpoint

// LoadFunc loads the options under a parent. An error means no candidate
// produced a usable response; an empty slice with a nil error means the
// backend answered with no rows.
type LoadFunc func(ctx context.Context, parentID string) ([]SelectOption, error)

// Fetcher loads option lists from the backend.
type Fetcher struct {
	client *backend.Client
}

// NewFetcher returns a Fetcher using client.
func NewFetcher(client *backend.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch probes candidates and normalizes the first usable row array.
func (f *Fetcher) Fetch(ctx context.Context, operation string, candidates []backend.Endpoint) ([]SelectOption, error) {
	rows, _, err := backend.Probe(ctx, f.client, operation, candidates, nil,
		backend.RequireOK(backend.RowsAccept))
	if err != nil {
		return []SelectOption{}, err
	}
	return NormalizeOptions(rows), nil
}

// FetchOptions is Fetch with failures logged and swallowed: when every
// candidate fails the result is empty.
func (f *Fetcher) FetchOptions(ctx context.Context, candidates []backend.Endpoint) []SelectOption {
	return f.fetchLogged(ctx, "fetch_options", candidates)
}

func (f *Fetcher) fetchLogged(ctx context.Context, operation string, candidates []backend.Endpoint) []SelectOption {
	opts, err := f.Fetch(ctx, operation, candidates)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "options").
			Str("operation", operation).
			Int("candidates", len(candidates)).
			Err(err).
			Msg("no usable options response")
	}
	return opts
}

// Loader adapts a Source to a LoadFunc. When requireParent is set an empty
// parent id yields no options and no request.
func (f *Fetcher) Loader(operation string, src Source, requireParent bool) LoadFunc {
	return func(ctx context.Context, parentID string) ([]SelectOption, error) {
		if requireParent && parentID == "" {
			return []SelectOption{}, nil
		}
		return f.Fetch(ctx, operation, src(parentID))
	}
}

// ChargerOrganizations lists organizations owning chargers.
func (f *Fetcher) ChargerOrganizations(ctx context.Context) []SelectOption {
	return f.fetchLogged(ctx, "charger_organizations", catalog.ChargerOrganizations())
}

// LocationsByOrg lists the locations of orgID. Empty orgID makes no request.
func (f *Fetcher) LocationsByOrg(ctx context.Context, orgID string) []SelectOption {
	if orgID == "" {
		return []SelectOption{}
	}
	return f.fetchLogged(ctx, "locations_by_org", catalog.LocationsByOrg(orgID))
}

// ChargersByLocation lists the chargers at locationID.
func (f *Fetcher) ChargersByLocation(ctx context.Context, locationID string) []SelectOption {
	if locationID == "" {
		return []SelectOption{}
	}
	return f.fetchLogged(ctx, "chargers_by_location", catalog.ChargersByLocation(locationID))
}

// ConnectorsByCharger lists the connectors of chargerID.
func (f *Fetcher) ConnectorsByCharger(ctx context.Context, chargerID string) []SelectOption {
	if chargerID == "" {
		return []SelectOption{}
	}
	return f.fetchLogged(ctx, "connectors_by_charger", catalog.ConnectorsByCharger(chargerID))
}

// OrganizationsLoader loads the root organization level.
func (f *Fetcher) OrganizationsLoader() LoadFunc {
	return f.Loader("charger_organizations", func(string) []backend.Endpoint {
		return catalog.ChargerOrganizations()
	}, false)
}

// LocationsLoader loads locations under an organization.
func (f *Fetcher) LocationsLoader() LoadFunc {
	return f.Loader("locations_by_org", catalog.LocationsByOrg, true)
}

// ChargersLoader loads chargers under a location.
func (f *Fetcher) ChargersLoader() LoadFunc {
	return f.Loader("chargers_by_location", catalog.ChargersByLocation, true)
}

// ConnectorsLoader loads connectors under a charger.
func (f *Fetcher) ConnectorsLoader() LoadFunc {
	return f.Loader("connectors_by_charger", catalog.ConnectorsByCharger, true)
}
