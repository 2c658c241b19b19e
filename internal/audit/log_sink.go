package audit

import (
	"context"
	"log/slog"
)

// LogSink writes audit events as structured log lines. It is the sink used
// when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"audit", true,
		"action", string(event.Action),
		"request_id", event.RequestID,
		"subject", event.Subject,
		"entry_number", event.EntryNumber,
		"land_charge_id", event.ChargeID,
		"timestamp", event.Timestamp,
	)
	return nil
}
