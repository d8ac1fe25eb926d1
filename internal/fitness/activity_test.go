package fitness

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitnessmanager/internal/journal"
)

func TestTrackMemberProgressThroughRegistry(t *testing.T) {
	ctx := context.Background()
	stamped := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	useClock(t, stamped)
	r := NewRegistry()
	r.RegisterMember(ctx, NewMember("M001", "John Doe", 30, TierPremium, ""))

	data := map[string]any{"weight": 80}
	entry, err := r.TrackMemberProgress(ctx, "M001", data)
	require.NoError(t, err)
	assert.Equal(t, stamped, entry.Date)
	data["weight"] = 1

	progress := r.ViewMemberProgress(ctx, "M001")
	require.Len(t, progress, 1)
	assert.Equal(t, entry.ID, progress[0].ID)
	assert.Equal(t, 80, progress[0].Data["weight"])

	_, err = r.TrackMemberProgress(ctx, "X999", data)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberLogsThroughRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()
	r.RegisterMember(ctx, NewMember("M001", "John Doe", 30, TierPremium, ""))

	w, err := r.LogMemberWorkout(ctx, "M001", Workout{ExerciseType: "Running", DurationMin: 30, Calories: 300})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	_, err = r.LogMemberMeal(ctx, "M001", Meal{MealType: "Lunch", Calories: 650, ProteinG: 40})
	require.NoError(t, err)
	g, err := r.SetMemberGoal(ctx, "M001", Goal{GoalType: "Weight Loss", Target: "75kg", DurationWeeks: 12})
	require.NoError(t, err)

	require.NoError(t, r.UpdateMemberGoalProgress(ctx, "M001", g.ID, 40))
	require.ErrorIs(t, r.UpdateMemberGoalProgress(ctx, "M001", "missing", 10), ErrGoalNotFound)

	activity, err := r.MemberActivity(ctx, "M001")
	require.NoError(t, err)
	require.Len(t, activity.Workouts, 1)
	assert.Equal(t, "Running", activity.Workouts[0].ExerciseType)
	require.Len(t, activity.Meals, 1)
	assert.Equal(t, "Lunch", activity.Meals[0].MealType)
	require.Len(t, activity.Goals, 1)
	assert.Equal(t, 40.0, activity.Goals[0].ProgressPct)

	_, err = r.LogMemberWorkout(ctx, "X999", Workout{})
	require.ErrorIs(t, err, ErrMemberNotFound)
	_, err = r.LogMemberMeal(ctx, "X999", Meal{})
	require.ErrorIs(t, err, ErrMemberNotFound)
	_, err = r.SetMemberGoal(ctx, "X999", Goal{})
	require.ErrorIs(t, err, ErrMemberNotFound)
	require.ErrorIs(t, r.UpdateMemberGoalProgress(ctx, "X999", g.ID, 1), ErrMemberNotFound)
	_, err = r.MemberActivity(ctx, "X999")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestConcurrentProgressTrackingAndReads(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(WithJournal(journal.New()))
	r.RegisterMember(ctx, NewMember("M1", "Concurrent", 30, TierBasic, ""))

	const writers, entries = 4, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < entries; i++ {
				_, err := r.TrackMemberProgress(ctx, "M1", map[string]any{"writer": w, "seq": i})
				assert.NoError(t, err)
				_, err = r.LogMemberWorkout(ctx, "M1", Workout{ExerciseType: fmt.Sprintf("w%d", w)})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < entries; i++ {
			for _, e := range r.ViewMemberProgress(ctx, "M1") {
				_ = e.Data["seq"]
			}
			_, _ = r.MemberActivity(ctx, "M1")
		}
	}()
	wg.Wait()

	assert.Len(t, r.ViewMemberProgress(ctx, "M1"), writers*entries)
	activity, err := r.MemberActivity(ctx, "M1")
	require.NoError(t, err)
	assert.Len(t, activity.Workouts, writers*entries)
}
