package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testEvent struct {
	Message string `json:"message"`
}

func newEvent(t testing.TB, eventType, msg string) Event {
	t.Helper()
	data, err := json.Marshal(testEvent{Message: msg})
	require.NoError(t, err)
	return Event{EventType: eventType, EventData: data}
}

func TestAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	j := New()

	require.NoError(t, j.AppendEvents(ctx, "M001", "member", 0, []Event{
		newEvent(t, "MemberRegistered", "one"),
		newEvent(t, "MemberEnrolled", "two"),
	}))
	require.NoError(t, j.AppendEvents(ctx, "M001", "member", 2, []Event{
		newEvent(t, "MembershipCancelled", "three"),
	}))

	events, err := j.LoadEvents(ctx, "M001", 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Version)
		assert.Equal(t, "member", e.AggregateType)
		assert.False(t, e.CreatedAt.IsZero())
	}
	assert.Equal(t, "MembershipCancelled", events[2].EventType)

	ranged, err := j.LoadEvents(ctx, "M001", 2, 2)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "MemberEnrolled", ranged[0].EventType)

	version, err := j.GetCurrentVersion(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestAppendVersionConflict(t *testing.T) {
	ctx := context.Background()
	j := New()

	require.NoError(t, j.AppendEvents(ctx, "C001", "class", 0, []Event{newEvent(t, "ClassScheduled", "x")}))

	err := j.AppendEvents(ctx, "C001", "class", 0, []Event{newEvent(t, "ClassScheduled", "y")})
	require.ErrorIs(t, err, ErrConcurrencyConflict)

	err = j.AppendEvents(ctx, "C001", "class", -1, nil)
	require.ErrorIs(t, err, ErrInvalidVersion)

	version, err := j.GetCurrentVersion(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestLoadUnknownAggregate(t *testing.T) {
	_, err := New().LoadEvents(context.Background(), "nope", 0, 0)
	require.ErrorIs(t, err, ErrAggregateNotFound)
}

func TestStreamEventsAcrossAggregates(t *testing.T) {
	ctx := context.Background()
	j := New()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("A%d", i%2)
		version, err := j.GetCurrentVersion(ctx, id)
		require.NoError(t, err)
		require.NoError(t, j.AppendEvents(ctx, id, "test", version, []Event{newEvent(t, "Tick", fmt.Sprint(i))}))
	}

	first, err := j.StreamEvents(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(1), first[0].ID)
	assert.Equal(t, int64(2), first[1].ID)

	rest, err := j.StreamEvents(ctx, first[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 3)
	assert.Equal(t, int64(5), rest[2].ID)

	none, err := j.StreamEvents(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSnapshotKeepsNewestVersion(t *testing.T) {
	ctx := context.Background()
	j := New()

	snap, err := j.LoadSnapshot(ctx, "M001")
	require.NoError(t, err)
	assert.Nil(t, snap)

	require.NoError(t, j.SaveSnapshot(ctx, Snapshot{AggregateID: "M001", AggregateType: "member", Version: 3, State: json.RawMessage(`{"v":3}`)}))
	require.NoError(t, j.SaveSnapshot(ctx, Snapshot{AggregateID: "M001", AggregateType: "member", Version: 2, State: json.RawMessage(`{"v":2}`)}))

	snap, err = j.LoadSnapshot(ctx, "M001")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 3, snap.Version)
	assert.JSONEq(t, `{"v":3}`, string(snap.State))
}

func TestAppendRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	j := New()
	require.NoError(t, j.AppendEvents(context.Background(), "T001", "trainer", 0, []Event{newEvent(t, "TrainerAdded", "x")}))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "journal.append", spans[0].Name())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "event.appended", spans[0].Events()[0].Name)
}

func BenchmarkAppendEvents(b *testing.B) {
	ctx := context.Background()
	j := New()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		events := []Event{newEvent(b, "TestEvent", fmt.Sprintf("event %d", i))}
		b.StartTimer()

		if err := j.AppendEvents(ctx, fmt.Sprintf("agg-%d", i), "test_aggregate", 0, events); err != nil {
			b.Fatalf("AppendEvents failed: %v", err)
		}
	}
}
