package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"maintain/pkg/requestcontext"
)

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Append(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestPublisherFillsRequestFields(t *testing.T) {
	sink := &recordingSink{}
	publisher := NewPublisher(sink)

	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithSubject(ctx, "caseworker")

	require.NoError(t, publisher.Emit(ctx, Event{Action: ActionChargeCreated, EntryNumber: "7"}))

	require.Len(t, sink.events, 1)
	got := sink.events[0]
	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "caseworker", got.Subject)
	assert.Equal(t, "7", got.EntryNumber)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var publisher *Publisher
	assert.NoError(t, publisher.Emit(context.Background(), Event{Action: ActionChargeCreated}))
}

func TestLogSinkWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, sink.Append(context.Background(), Event{Action: ActionChargeCreated, EntryNumber: "12"}))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "charge_created", line["action"])
	assert.Equal(t, "12", line["entry_number"])
}

func TestKafkaSinkPublishesKeyedRecord(t *testing.T) {
	producer := &fakeProducer{}
	sink := NewKafkaSink(producer, "maintain.audit")

	err := sink.Append(context.Background(), Event{Action: ActionChargeUpdated, ChargeID: "LLC-1"})
	require.NoError(t, err)

	require.Len(t, producer.records, 1)
	record := producer.records[0]
	assert.Equal(t, "maintain.audit", record.Topic)
	assert.Equal(t, []byte("LLC-1"), record.Key)

	var decoded Event
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, ActionChargeUpdated, decoded.Action)
}

func TestKafkaSinkReturnsProduceError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	sink := NewKafkaSink(producer, "maintain.audit")

	err := sink.Append(context.Background(), Event{Action: ActionChargeCreated})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
