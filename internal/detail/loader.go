// Package detail loads the full record behind a selected id and maps the
// backend's varying field spellings onto one canonical struct per entity.
package detail

import (
	"context"
	"time"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
	"github.com/ionenergy/ionctl/internal/options"
)

// Loader fetches one entity's record through an ordered candidate list.
type Loader[T any] struct {
	client     *backend.Client
	entity     string
	sentinel   string
	candidates func(id string) []backend.Endpoint
	decode     func(rec map[string]any) T
}

// Load returns the record for id, or nil when id is empty or the "new"
// sentinel (no request is made) or when no candidate yields a record.
// Failures are logged, never returned.
func (l *Loader[T]) Load(ctx context.Context, id string) *T {
	if id == "" || id == l.sentinel {
		return nil
	}

	start := time.Now()
	rec, used, err := backend.Probe(ctx, l.client, "load_"+l.entity, l.candidates(id), nil,
		backend.RequireOK(backend.RecordAccept))
	log := logging.FromContext(ctx)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "detail").
			Str("entity", l.entity).
			Str("id", id).
			Err(err).
			Msg("no record found")
		return nil
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "detail").
		Str("entity", l.entity).
		Str("id", id).
		Str("endpoint", used.String()).
		Dur("duration", time.Since(start)).
		Msg("record loaded")
	v := l.decode(rec)
	return &v
}

// Sentinel returns the id that stands for "new record".
func (l *Loader[T]) Sentinel() string { return l.sentinel }

// Chargers returns the charger detail loader.
func Chargers(client *backend.Client) *Loader[ChargerDetail] {
	return &Loader[ChargerDetail]{
		client:     client,
		entity:     "charger",
		sentinel:   options.NewCharger,
		candidates: catalog.ChargerDetail,
		decode:     DecodeCharger,
	}
}

// Connectors returns the connector detail loader.
func Connectors(client *backend.Client) *Loader[ConnectorDetail] {
	return &Loader[ConnectorDetail]{
		client:     client,
		entity:     "connector",
		sentinel:   options.NewConnector,
		candidates: catalog.ConnectorDetail,
		decode:     DecodeConnector,
	}
}

// Tariffs returns the loader for the tariff attached to a connector. It is
// keyed by connector id.
func Tariffs(client *backend.Client) *Loader[TariffDetail] {
	return &Loader[TariffDetail]{
		client:     client,
		entity:     "tariff",
		sentinel:   options.NewTariff,
		candidates: catalog.TariffByConnector,
		decode:     DecodeTariff,
	}
}

// Organizations returns the organization detail loader.
func Organizations(client *backend.Client) *Loader[OrganizationDetail] {
	return &Loader[OrganizationDetail]{
		client:     client,
		entity:     "organization",
		sentinel:   options.NewOrganization,
		candidates: catalog.OrganizationDetail,
		decode:     DecodeOrganization,
	}
}
