package fitness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fitnessmanager/internal/journal"
)

// MemberState is a member's profile and logs as captured when the
// membership was cancelled.
type MemberState struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Age            int             `json:"age"`
	Tier           Tier            `json:"membership_tier"`
	FitnessGoal    string          `json:"fitness_goal"`
	BookedClassIDs []string        `json:"booked_class_ids,omitempty"`
	Progress       []ProgressEntry `json:"progress,omitempty"`
	Workouts       []Workout       `json:"workouts,omitempty"`
	Meals          []Meal          `json:"meals,omitempty"`
	Goals          []Goal          `json:"goals,omitempty"`
}

// MemberHistory is everything the journal holds for one member ID.
type MemberHistory struct {
	Events []journal.Event
	// Final is the state at the latest cancellation, nil if the member was
	// never cancelled. FinalVersion is the stream version it was taken at.
	Final        *MemberState
	FinalVersion int
}

func stateOf(m *Member) MemberState {
	s := MemberState{
		ID:          m.ID,
		Name:        m.Name,
		Age:         m.Age,
		Tier:        m.Tier,
		FitnessGoal: m.FitnessGoal,
		Progress:    m.Progress(),
		Workouts:    m.Workouts(),
		Meals:       m.Meals(),
		Goals:       m.Goals(),
	}
	for _, c := range m.bookings {
		s.BookedClassIDs = append(s.BookedClassIDs, c.ID)
	}
	return s
}

// snapshotMember stores state against the member's stream at its current
// version. Failures are logged like any other journal failure.
func (r *Registry) snapshotMember(ctx context.Context, state MemberState) {
	if r.journal == nil {
		return
	}

	stream := streamName(aggregateMember, state.ID)
	data, err := json.Marshal(state)
	if err != nil {
		r.logger.Error().Err(err).Str("stream", stream).Msg("failed to marshal member snapshot")
		return
	}
	version, err := r.journal.GetCurrentVersion(ctx, stream)
	if err == nil {
		err = r.journal.SaveSnapshot(ctx, journal.Snapshot{
			AggregateID:   stream,
			AggregateType: aggregateMember,
			Version:       version,
			State:         data,
		})
	}
	if err != nil {
		r.logger.Error().Err(err).Str("stream", stream).Msg("failed to save member snapshot")
	}
}

// MemberHistory returns the journalled events of the member with memberID
// and the state captured at its latest cancellation. It works for cancelled
// members too, since the journal outlives the registry entry.
func (r *Registry) MemberHistory(ctx context.Context, memberID string) (MemberHistory, error) {
	ctx, span := r.tracer.Start(ctx, "registry.member_history",
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	if r.journal == nil {
		return MemberHistory{}, ErrNoJournal
	}

	stream := streamName(aggregateMember, memberID)
	events, err := r.journal.LoadEvents(ctx, stream, 1, 0)
	if errors.Is(err, journal.ErrAggregateNotFound) {
		return MemberHistory{}, fmt.Errorf("history of %s: %w", memberID, ErrMemberNotFound)
	}
	if err != nil {
		return MemberHistory{}, fmt.Errorf("load history of %s: %w", memberID, err)
	}

	history := MemberHistory{Events: events}
	snapshot, err := r.journal.LoadSnapshot(ctx, stream)
	if err != nil {
		return MemberHistory{}, fmt.Errorf("load snapshot of %s: %w", memberID, err)
	}
	if snapshot != nil {
		var state MemberState
		if err := json.Unmarshal(snapshot.State, &state); err != nil {
			return MemberHistory{}, fmt.Errorf("decode snapshot of %s: %w", memberID, err)
		}
		history.Final = &state
		history.FinalVersion = snapshot.Version
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return history, nil
}
