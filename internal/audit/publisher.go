package audit

import (
	"context"

	"maintain/pkg/requestcontext"
)

// Sink persists or forwards audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and delegates
// delivery to a sink so tests can swap sinks easily.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit fills request-scoped fields the caller left empty and hands the event
// to the sink.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil || p.sink == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Subject == "" {
		event.Subject = requestcontext.Subject(ctx)
	}
	return p.sink.Append(ctx, event)
}
