// Package journal keeps an append-only, per-aggregate versioned log of
// domain events for the lifetime of the process.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrConcurrencyConflict = errors.New("concurrency conflict: version mismatch")
	ErrAggregateNotFound   = errors.New("aggregate not found")
	ErrInvalidVersion      = errors.New("invalid version number")
)

// Event is a recorded domain event with its metadata.
type Event struct {
	ID            int64                  `json:"id"`
	AggregateID   string                 `json:"aggregate_id"`
	AggregateType string                 `json:"aggregate_type"`
	EventType     string                 `json:"event_type"`
	EventData     json.RawMessage        `json:"event_data"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Version       int                    `json:"version"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Snapshot holds aggregate state captured at a version.
type Snapshot struct {
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	State         json.RawMessage `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Journal is safe for concurrent use.
type Journal struct {
	mu        sync.RWMutex
	events    []Event
	byID      map[string][]int
	snapshots map[string]Snapshot
	nextID    int64
	tracer    trace.Tracer
	now       func() time.Time
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		byID:      make(map[string][]int),
		snapshots: make(map[string]Snapshot),
		tracer:    otel.Tracer("fitnessmanager/journal"),
		now:       time.Now,
	}
}

// AppendEvents atomically appends events with optimistic concurrency control.
// expectedVersion must equal the aggregate's current version.
func (j *Journal) AppendEvents(ctx context.Context, aggregateID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := j.tracer.Start(ctx, "journal.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	currentVersion := len(j.byID[aggregateID])
	if currentVersion != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", currentVersion),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	for i, event := range events {
		j.nextID++
		event.ID = j.nextID
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = j.now().UTC()

		j.events = append(j.events, event)
		j.byID[aggregateID] = append(j.byID[aggregateID], len(j.events)-1)

		span.AddEvent("event.appended", trace.WithAttributes(
			attribute.Int64("event.id", event.ID),
			attribute.Int("event.version", event.Version),
			attribute.String("event.type", event.EventType),
		))
	}

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

// LoadEvents returns the aggregate's events with fromVersion <= version <= toVersion.
// A toVersion of 0 means no upper bound.
func (j *Journal) LoadEvents(ctx context.Context, aggregateID string, fromVersion, toVersion int) ([]Event, error) {
	_, span := j.tracer.Start(ctx, "journal.load",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID),
			attribute.Int("from.version", fromVersion),
			attribute.Int("to.version", toVersion),
		),
	)
	defer span.End()

	j.mu.RLock()
	defer j.mu.RUnlock()

	idx, ok := j.byID[aggregateID]
	if !ok {
		return nil, ErrAggregateNotFound
	}

	var events []Event
	for _, i := range idx {
		e := j.events[i]
		if e.Version < fromVersion {
			continue
		}
		if toVersion > 0 && e.Version > toVersion {
			break
		}
		events = append(events, e)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

// GetCurrentVersion returns the latest version for an aggregate, 0 if none.
func (j *Journal) GetCurrentVersion(ctx context.Context, aggregateID string) (int, error) {
	_, span := j.tracer.Start(ctx, "journal.get_version",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID),
		),
	)
	defer span.End()

	j.mu.RLock()
	version := len(j.byID[aggregateID])
	j.mu.RUnlock()

	span.SetAttributes(attribute.Int("current.version", version))
	return version, nil
}

// StreamEvents returns up to batchSize events with ID greater than fromID,
// across all aggregates, in append order.
func (j *Journal) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]Event, error) {
	_, span := j.tracer.Start(ctx, "journal.stream",
		trace.WithAttributes(
			attribute.Int64("from.id", fromID),
			attribute.Int("batch.size", batchSize),
		),
	)
	defer span.End()

	j.mu.RLock()
	defer j.mu.RUnlock()

	// IDs are dense and start at 1, so position fromID is the first candidate.
	start := int(fromID)
	if start < 0 {
		start = 0
	}
	if start >= len(j.events) || batchSize <= 0 {
		return nil, nil
	}
	end := start + batchSize
	if end > len(j.events) {
		end = len(j.events)
	}

	events := append([]Event(nil), j.events[start:end]...)
	span.SetAttributes(attribute.Int("events.streamed", len(events)))
	return events, nil
}

// SaveSnapshot stores aggregate state. An older or equal version never
// replaces a newer snapshot.
func (j *Journal) SaveSnapshot(ctx context.Context, snapshot Snapshot) error {
	_, span := j.tracer.Start(ctx, "journal.save_snapshot")
	defer span.End()

	j.mu.Lock()
	defer j.mu.Unlock()

	if existing, ok := j.snapshots[snapshot.AggregateID]; ok && existing.Version >= snapshot.Version {
		return nil
	}
	snapshot.CreatedAt = j.now().UTC()
	j.snapshots[snapshot.AggregateID] = snapshot
	return nil
}

// LoadSnapshot returns the latest snapshot, or nil if none exists.
func (j *Journal) LoadSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error) {
	_, span := j.tracer.Start(ctx, "journal.load_snapshot")
	defer span.End()

	j.mu.RLock()
	defer j.mu.RUnlock()

	snapshot, ok := j.snapshots[aggregateID]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}
