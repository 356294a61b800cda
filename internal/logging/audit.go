package logging

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AuditEntry records one write against the backend.
type AuditEntry struct {
	Command    string            `json:"command"`
	TraceID    string            `json:"trace_id,omitempty"`
	Entity     string            `json:"entity,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	Endpoint   string            `json:"endpoint,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	DurationMS int64             `json:"duration_ms"`
}

// NewAuditEntry starts an entry for command.
func NewAuditEntry(command, traceID string) *AuditEntry {
	return &AuditEntry{Command: command, TraceID: traceID}
}

// WithEntity sets the entity kind and id being written.
func (e *AuditEntry) WithEntity(entity, id string) *AuditEntry {
	e.Entity = entity
	e.EntityID = id
	return e
}

// WithEndpoint records the endpoint that produced the result.
func (e *AuditEntry) WithEndpoint(endpoint string) *AuditEntry {
	e.Endpoint = endpoint
	return e
}

// WithParameters attaches request parameters.
func (e *AuditEntry) WithParameters(params map[string]string) *AuditEntry {
	e.Parameters = params
	return e
}

// WithResult records the outcome reported by the backend.
func (e *AuditEntry) WithResult(success bool, message string) *AuditEntry {
	e.Success = success
	e.Message = message
	return e
}

// WithError marks the entry failed.
func (e *AuditEntry) WithError(msg string) *AuditEntry {
	e.Success = false
	e.Error = msg
	return e
}

// WithDuration sets the elapsed time since start.
func (e *AuditEntry) WithDuration(start time.Time) *AuditEntry {
	e.DurationMS = time.Since(start).Milliseconds()
	return e
}

// AuditLogger writes audit entries.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry)
	Close() error
}

// AuditLoggerConfig configures NewAuditLogger.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

// NewAuditLogger returns a JSON-lines audit logger, or a no-op logger when
// auditing is disabled or the file cannot be opened.
func NewAuditLogger(cfg AuditLoggerConfig) AuditLogger {
	if !cfg.Enabled || cfg.File == "" {
		return nopAuditLogger{}
	}
	f, err := openLogFile(cfg.File)
	if err != nil {
		return nopAuditLogger{}
	}
	return &fileAuditLogger{
		logger: zerolog.New(f).With().Timestamp().Logger(),
		closer: f.Close,
	}
}

type fileAuditLogger struct {
	mu     sync.Mutex
	logger zerolog.Logger
	closer func() error
}

func (a *fileAuditLogger) Log(_ context.Context, entry AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ev := a.logger.Log().
		Str("command", entry.Command).
		Bool("success", entry.Success).
		Int64("duration_ms", entry.DurationMS)
	if entry.TraceID != "" {
		ev = ev.Str("trace_id", entry.TraceID)
	}
	if entry.Entity != "" {
		ev = ev.Str("entity", entry.Entity).Str("entity_id", entry.EntityID)
	}
	if entry.Endpoint != "" {
		ev = ev.Str("endpoint", entry.Endpoint)
	}
	if len(entry.Parameters) > 0 {
		dict := zerolog.Dict()
		for k, v := range entry.Parameters {
			dict = dict.Str(k, v)
		}
		ev = ev.Dict("parameters", dict)
	}
	if entry.Message != "" {
		ev = ev.Str("message", entry.Message)
	}
	if entry.Error != "" {
		ev = ev.Str("error", entry.Error)
	}
	ev.Send()
}

func (a *fileAuditLogger) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closer == nil {
		return nil
	}
	err := a.closer()
	a.closer = nil
	return err
}

type nopAuditLogger struct{}

func (nopAuditLogger) Log(context.Context, AuditEntry) {}
func (nopAuditLogger) Close() error                    { return nil }

type auditLoggerKey struct{}

// ContextWithAuditLogger stores l in ctx.
func ContextWithAuditLogger(ctx context.Context, l AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey{}, l)
}

// AuditLoggerFromContext returns the audit logger in ctx, or a no-op logger.
func AuditLoggerFromContext(ctx context.Context) AuditLogger {
	if ctx != nil {
		if l, ok := ctx.Value(auditLoggerKey{}).(AuditLogger); ok && l != nil {
			return l
		}
	}
	return nopAuditLogger{}
}
