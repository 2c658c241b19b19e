package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsOnEmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, Subject(ctx))
	assert.Empty(t, RequestID(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestAccessorsRoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ctx := WithSubject(context.Background(), "caseworker-1")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "caseworker-1", Subject(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "2026-03-14", Now(ctx).Format(time.DateOnly))
}
