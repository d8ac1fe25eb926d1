package fitness

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Activity holds a member's workout, meal and goal logs.
type Activity struct {
	Workouts []Workout `json:"workouts"`
	Meals    []Meal    `json:"meals"`
	Goals    []Goal    `json:"goals"`
}

// TrackMemberProgress appends data to the progress log of the registered
// member with memberID.
func (r *Registry) TrackMemberProgress(ctx context.Context, memberID string, data map[string]any) (ProgressEntry, error) {
	var entry ProgressEntry
	err := r.updateMember(ctx, "registry.track_progress", "track progress", memberID, func(ctx context.Context, m *Member) error {
		entry = m.TrackProgress(data)
		r.record(ctx, aggregateMember, memberID, "ProgressTracked", ProgressTrackedEvent{
			MemberID: memberID,
			EntryID:  entry.ID,
			Date:     entry.Date,
			Data:     entry.Data,
		})
		return nil
	})
	return entry, err
}

// LogMemberWorkout appends w to the member's workout log.
func (r *Registry) LogMemberWorkout(ctx context.Context, memberID string, w Workout) (Workout, error) {
	var logged Workout
	err := r.updateMember(ctx, "registry.log_workout", "log workout", memberID, func(ctx context.Context, m *Member) error {
		logged = m.LogWorkout(w)
		r.record(ctx, aggregateMember, memberID, "WorkoutLogged", WorkoutLoggedEvent{
			MemberID: memberID,
			Workout:  logged,
		})
		return nil
	})
	return logged, err
}

// LogMemberMeal appends meal to the member's nutrition log.
func (r *Registry) LogMemberMeal(ctx context.Context, memberID string, meal Meal) (Meal, error) {
	var logged Meal
	err := r.updateMember(ctx, "registry.log_meal", "log meal", memberID, func(ctx context.Context, m *Member) error {
		logged = m.LogMeal(meal)
		r.record(ctx, aggregateMember, memberID, "MealLogged", MealLoggedEvent{
			MemberID: memberID,
			Meal:     logged,
		})
		return nil
	})
	return logged, err
}

// SetMemberGoal adds g to the member's goals.
func (r *Registry) SetMemberGoal(ctx context.Context, memberID string, g Goal) (Goal, error) {
	var set Goal
	err := r.updateMember(ctx, "registry.set_goal", "set goal", memberID, func(ctx context.Context, m *Member) error {
		set = m.SetGoal(g)
		r.record(ctx, aggregateMember, memberID, "GoalSet", GoalSetEvent{
			MemberID: memberID,
			Goal:     set,
		})
		return nil
	})
	return set, err
}

// UpdateMemberGoalProgress sets the completion percentage of one of the
// member's goals.
func (r *Registry) UpdateMemberGoalProgress(ctx context.Context, memberID, goalID string, pct float64) error {
	return r.updateMember(ctx, "registry.update_goal", "update goal", memberID, func(ctx context.Context, m *Member) error {
		if !m.UpdateGoalProgress(goalID, pct) {
			return fmt.Errorf("update goal %s of %s: %w", goalID, memberID, ErrGoalNotFound)
		}
		r.record(ctx, aggregateMember, memberID, "GoalProgressUpdated", GoalProgressUpdatedEvent{
			MemberID:    memberID,
			GoalID:      goalID,
			ProgressPct: pct,
		})
		return nil
	})
}

// MemberActivity returns copies of the member's workout, meal and goal logs.
func (r *Registry) MemberActivity(ctx context.Context, memberID string) (Activity, error) {
	_, span := r.tracer.Start(ctx, "registry.member_activity",
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberByID[memberID]
	if !ok {
		return Activity{}, fmt.Errorf("activity of %s: %w", memberID, ErrMemberNotFound)
	}
	return Activity{
		Workouts: m.Workouts(),
		Meals:    m.Meals(),
		Goals:    m.Goals(),
	}, nil
}

// updateMember runs fn on the registered member under the write lock.
func (r *Registry) updateMember(ctx context.Context, spanName, action, memberID string, fn func(context.Context, *Member) error) error {
	ctx, span := r.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memberByID[memberID]
	if !ok {
		err := fmt.Errorf("%s for %s: %w", action, memberID, ErrMemberNotFound)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Info().Str("member_id", memberID).Msg(action + ": member not found")
		return err
	}
	if err := fn(ctx, m); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
