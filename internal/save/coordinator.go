// Package save submits create-or-update requests through the endpoint
// fallback lists in catalog and reduces whatever the backend answers to a
// Result.
package save

import (
	"context"
	"time"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/catalog"
	"github.com/ionenergy/ionctl/internal/logging"
)

// Result is the outcome of a save. It is always fully populated.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Entity names a writable resource.
type Entity struct {
	// Name is the lower-case name used in logs and failure messages.
	Name string
	// Title is the capitalized name used in success messages.
	Title string
	// Collection is the resource path, e.g. /chargers.
	Collection string
}

// Writable entities.
//
//nolint:gochecknoglobals // Read-only descriptors.
var (
	Charger      = Entity{Name: "charger", Title: "Charger", Collection: catalog.ChargersPath}
	Connector    = Entity{Name: "connector", Title: "Connector", Collection: catalog.ConnectorsPath}
	Tariff       = Entity{Name: "tariff", Title: "Tariff", Collection: catalog.TariffsPath}
	Organization = Entity{Name: "organization", Title: "Organization", Collection: catalog.OrganizationsPath}
	PartnerUser  = Entity{Name: "partner user", Title: "Partner user", Collection: "/users/partners"}
)

// FailedMessage is the message of a save no endpoint accepted.
func (e Entity) FailedMessage() string {
	return "Failed to save " + e.Name
}

// SuccessMessage is the default message of a successful save.
func (e Entity) SuccessMessage(updated bool) string {
	if updated {
		return e.Title + " updated"
	}
	return e.Title + " added"
}

// Coordinator sends save requests.
type Coordinator struct {
	client *backend.Client
}

// NewCoordinator returns a Coordinator using client.
func NewCoordinator(client *backend.Client) *Coordinator {
	return &Coordinator{client: client}
}

// Save writes body for entity. With an id the record is updated through
// PUT collection/id, otherwise created through POST collection; both fall
// back to POST collection/save.
func (c *Coordinator) Save(ctx context.Context, entity Entity, id string, body any) Result {
	return c.Submit(ctx, entity, id, catalog.Save(entity.Collection, id), body)
}

// Submit tries candidates in order and stops at the first one answering with
// JSON, whatever its status. The JSON's success field decides the outcome
// when present; otherwise the HTTP status does. Transport and parse failures
// are logged and never returned.
func (c *Coordinator) Submit(
	ctx context.Context,
	entity Entity,
	id string,
	candidates []backend.Endpoint,
	body any,
) Result {
	start := time.Now()
	log := logging.FromContext(ctx)
	entry := logging.NewAuditEntry("save_"+entity.Name, logging.TraceIDFromContext(ctx)).
		WithEntity(entity.Name, id)

	resp, used, err := backend.Probe(ctx, c.client, "save_"+entity.Name, candidates, body,
		func(resp *backend.Response) (*backend.Response, error) { return resp, nil })
	if err != nil {
		res := Result{Success: false, Message: entity.FailedMessage()}
		log.Error().
			Ctx(ctx).
			Str("component", "save").
			Str("entity", entity.Name).
			Str("id", id).
			Int("candidates", len(candidates)).
			Err(err).
			Msg("save failed on every endpoint")
		logging.AuditLoggerFromContext(ctx).Log(ctx, *entry.WithError(err.Error()).WithDuration(start))
		return res
	}

	res := Interpret(resp, entity, id != "")
	log.Info().
		Ctx(ctx).
		Str("component", "save").
		Str("entity", entity.Name).
		Str("id", id).
		Str("endpoint", used.String()).
		Int("status", resp.StatusCode).
		Bool("success", res.Success).
		Dur("duration", time.Since(start)).
		Msg("save answered")
	logging.AuditLoggerFromContext(ctx).Log(ctx,
		*entry.WithEndpoint(used.String()).WithResult(res.Success, res.Message).WithDuration(start))

	if res.Success {
		c.client.InvalidateCache()
	}
	return res
}

// Interpret reduces a decoded save response to a Result.
func Interpret(resp *backend.Response, entity Entity, updated bool) Result {
	success := resp.OK()
	var message string
	if obj, ok := resp.Body.(map[string]any); ok {
		if b, found := backend.Bool(obj, "success"); found {
			success = b
		}
		message = backend.String(obj, "message")
		if message == "" && !success {
			message = backend.String(obj, "error")
		}
	}
	if message == "" {
		if success {
			message = entity.SuccessMessage(updated)
		} else {
			message = entity.FailedMessage()
		}
	}
	return Result{Success: success, Message: message}
}
