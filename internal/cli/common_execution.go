package cli

import (
	"context"
	"time"

	"github.com/ionenergy/ionctl/internal/logging"
)

// commandAudit records one run of an audited command against the selection
// it was given.
type commandAudit struct {
	logger  logging.AuditLogger
	traceID string
	command string
	params  map[string]string
	started time.Time
}

// startAudit begins timing command. The audit logger and trace id come from
// ctx.
func startAudit(ctx context.Context, command string, params map[string]string) *commandAudit {
	return &commandAudit{
		logger:  logging.AuditLoggerFromContext(ctx),
		traceID: logging.TraceIDFromContext(ctx),
		command: command,
		params:  params,
		started: time.Now(),
	}
}

// finish writes the audit line. A non-nil err marks the run failed and
// message is ignored.
func (a *commandAudit) finish(ctx context.Context, message string, err error) {
	entry := logging.NewAuditEntry(a.command, a.traceID).WithParameters(a.params)
	if err != nil {
		entry = entry.WithError(err.Error())
	} else {
		entry = entry.WithResult(true, message)
	}
	a.logger.Log(ctx, *entry.WithDuration(a.started))
}
