// Package dashboard loads the read-only overview panels: charger
// connectivity, organization totals and the user leadership board.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
)

// ErrNoStatus is returned when neither the combined nor the split status
// endpoints answered.
var ErrNoStatus = errors.New("charger status unavailable")

// Field aliases for status rows.
//
//nolint:gochecknoglobals // Read-only alias tables.
var (
	statusNameKeys = []string{"name", "charger_name", "chargerName", "Name"}
	statusIDKeys   = []string{"id", "charger_id", "chargerId", "chargerID", "ID"}
	statusTimeKeys = []string{"time", "last_seen", "lastSeen", "updated_at", "updatedAt", "timestamp"}
)

// ChargerStatus is one row of the connectivity panel.
type ChargerStatus struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// StatusView splits chargers by connectivity.
type StatusView struct {
	Offline []ChargerStatus `json:"offline"`
	Online  []ChargerStatus `json:"online"`
}

// Filter keeps the chargers whose name or id fuzzily matches query.
func (v StatusView) Filter(query string) StatusView {
	if query == "" {
		return v
	}
	return StatusView{Offline: filterStatus(v.Offline, query), Online: filterStatus(v.Online, query)}
}

func filterStatus(rows []ChargerStatus, query string) []ChargerStatus {
	out := make([]ChargerStatus, 0, len(rows))
	for _, r := range rows {
		if fuzzy.MatchNormalizedFold(query, r.Name) || fuzzy.MatchNormalizedFold(query, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// DecodeStatus maps backend rows to ChargerStatus, dropping rows without an
// id or a name.
func DecodeStatus(rows []any) []ChargerStatus {
	out := make([]ChargerStatus, 0, len(rows))
	for _, r := range backend.Objects(rows) {
		s := ChargerStatus{
			Name: backend.String(r, statusNameKeys...),
			ID:   backend.String(r, statusIDKeys...),
			Time: backend.String(r, statusTimeKeys...),
		}
		if s.ID == "" && s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Service fetches dashboard panels.
type Service struct {
	client *backend.Client
}

// New returns a Service using client.
func New(client *backend.Client) *Service {
	return &Service{client: client}
}

// ChargerStatus reads the combined status endpoint and falls back to
// fetching the offline and online lists concurrently. The fallback succeeds
// when at least one half answers.
func (s *Service) ChargerStatus(ctx context.Context) (StatusView, error) {
	view, _, err := backend.Probe(ctx, s.client, "chargers_status", catalog.ChargersStatus(), nil,
		backend.RequireOK(statusAccept))
	if err == nil {
		return view, nil
	}

	var (
		offline, online       []ChargerStatus
		offlineErr, onlineErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		offline, offlineErr = s.statusList(gctx, "offline_chargers", catalog.OfflineChargers())
		return nil
	})
	g.Go(func() error {
		online, onlineErr = s.statusList(gctx, "online_chargers", catalog.OnlineChargers())
		return nil
	})
	_ = g.Wait()

	if offlineErr != nil && onlineErr != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "dashboard").
			Str("operation", "chargers_status").
			AnErr("offline_error", offlineErr).
			AnErr("online_error", onlineErr).
			Msg("charger status unavailable")
		return StatusView{Offline: []ChargerStatus{}, Online: []ChargerStatus{}},
			fmt.Errorf("%w: %w", ErrNoStatus, errors.Join(offlineErr, onlineErr))
	}
	return StatusView{Offline: orEmpty(offline), Online: orEmpty(online)}, nil
}

func (s *Service) statusList(ctx context.Context, op string, candidates []backend.Endpoint) ([]ChargerStatus, error) {
	rows, _, err := backend.Probe(ctx, s.client, op, candidates, nil, backend.RequireOK(backend.RowsAccept))
	if err != nil {
		return nil, err
	}
	return DecodeStatus(rows), nil
}

func statusAccept(resp *backend.Response) (StatusView, error) {
	obj, ok := resp.Body.(map[string]any)
	if !ok {
		return StatusView{}, backend.ErrNoRows
	}
	if data, isObj := obj["data"].(map[string]any); isObj {
		obj = data
	}
	offline, hasOff := obj["offline"].([]any)
	online, hasOn := obj["online"].([]any)
	if !hasOff && !hasOn {
		return StatusView{}, backend.ErrNoRows
	}
	return StatusView{Offline: DecodeStatus(offline), Online: DecodeStatus(online)}, nil
}

func orEmpty(rows []ChargerStatus) []ChargerStatus {
	if rows == nil {
		return []ChargerStatus{}
	}
	return rows
}
