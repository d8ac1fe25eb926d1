package fitness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useClock makes now return the given times in order, repeating the last.
func useClock(t *testing.T, times ...time.Time) {
	t.Helper()
	previous := now
	i := 0
	now = func() time.Time {
		ts := times[i]
		if i < len(times)-1 {
			i++
		}
		return ts
	}
	t.Cleanup(func() { now = previous })
}

func TestMemberUpdateMembership(t *testing.T) {
	m := NewMember("M001", "John Doe", 30, TierPremium, "Weight Loss")
	m.UpdateMembership(TierVIP)
	assert.Equal(t, TierVIP, m.Tier)

	m.UpdateMembership("Corporate")
	assert.Equal(t, Tier("Corporate"), m.Tier)
	assert.False(t, m.Tier.Known())
	assert.True(t, TierBasic.Known())
}

func TestMemberBookAndCancelClass(t *testing.T) {
	m := NewMember("M001", "John Doe", 30, TierBasic, "Weight Loss")
	yoga := NewFitnessClass("C001", "Morning Yoga", 15, "Monday, 8:00 AM")
	hiit := NewFitnessClass("C002", "HIIT Training", 10, "Tuesday, 6:00 PM")

	assert.True(t, m.BookClass(yoga))
	assert.False(t, m.BookClass(yoga))
	assert.True(t, m.BookClass(hiit))
	assert.Equal(t, []*FitnessClass{yoga, hiit}, m.Bookings())

	// Booking is member-side only.
	assert.Zero(t, yoga.CurrentEnrollments())

	assert.True(t, m.CancelClass(yoga))
	assert.False(t, m.CancelClass(yoga))
	assert.Equal(t, []*FitnessClass{hiit}, m.Bookings())
}

func TestTrackProgressKeepsOrderAndStamps(t *testing.T) {
	first := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	useClock(t, first, second)

	m := NewMember("M001", "John Doe", 30, TierPremium, "Weight Loss")
	in := map[string]any{"weight": 80, "running_speed": 10}
	m.TrackProgress(in)
	m.TrackProgress(map[string]any{"weight": 78, "running_speed": 11})

	in["weight"] = 999

	progress := m.Progress()
	require.Len(t, progress, 2)
	assert.Equal(t, first, progress[0].Date)
	assert.Equal(t, second, progress[1].Date)
	assert.Equal(t, 80, progress[0].Data["weight"])
	assert.Equal(t, 78, progress[1].Data["weight"])
	assert.NotEqual(t, progress[0].ID, progress[1].ID)

	fields := progress[1].Fields()
	assert.Equal(t, second, fields["date"])
	assert.Equal(t, 11, fields["running_speed"])
	assert.NotContains(t, progress[1].Data, "date")
}

func TestTrackProgressAcceptsNil(t *testing.T) {
	m := NewMember("M001", "John Doe", 30, TierBasic, "")
	entry := m.TrackProgress(nil)
	assert.Nil(t, entry.Data)
	assert.Contains(t, entry.Fields(), "date")
}

func TestWorkoutMealGoalLogs(t *testing.T) {
	at := time.Date(2024, 5, 2, 18, 30, 0, 0, time.UTC)
	useClock(t, at)

	m := NewMember("M002", "Jane Smith", 25, TierBasic, "Muscle Gain")

	w := m.LogWorkout(Workout{ExerciseType: "Running", DurationMin: 30, Calories: 300, Notes: "easy pace"})
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, at, w.Date)

	earlier := at.Add(-time.Hour)
	meal := m.LogMeal(Meal{ID: "meal-1", Date: earlier, MealType: "Lunch", FoodItems: "rice, chicken", Calories: 650, ProteinG: 45, CarbsG: 70, FatG: 15})
	assert.Equal(t, "meal-1", meal.ID)
	assert.Equal(t, earlier, meal.Date)

	g := m.SetGoal(Goal{GoalType: "Muscle Gain", Target: "+3kg", DurationWeeks: 12})
	assert.True(t, m.UpdateGoalProgress(g.ID, 40))
	assert.False(t, m.UpdateGoalProgress("missing", 10))

	require.Len(t, m.Workouts(), 1)
	require.Len(t, m.Meals(), 1)
	require.Len(t, m.Goals(), 1)
	assert.Equal(t, 40.0, m.Goals()[0].ProgressPct)

	// Workouts and meals live in their own logs.
	assert.Empty(t, m.Progress())
}

func TestFormatProgress(t *testing.T) {
	at := time.Date(2024, 1, 15, 7, 45, 0, 0, time.UTC)
	entries := []ProgressEntry{{Date: at, Data: map[string]any{"weight": 80, "running_speed": 10}}}

	out := FormatProgress("M001", entries)
	assert.Equal(t, "Progress Data for Member M001:\n\nEntry 1 - 2024-01-15 07:45:00:\n  running_speed: 10\n  weight: 80\n", out)

	assert.Contains(t, FormatProgress("X999", nil), "No progress data found")
}

func TestTrainerAssignClassAndSchedule(t *testing.T) {
	trainer := NewTrainer("T001", "Mike Johnson", "Yoga")
	yoga := NewFitnessClass("C001", "Morning Yoga", 15, "Monday, 8:00 AM")

	assert.True(t, trainer.AssignClass(yoga))
	assert.False(t, trainer.AssignClass(yoga))
	assert.Equal(t, []*FitnessClass{yoga}, trainer.ViewSchedule())

	// Trainer-side assignment does not touch the class.
	assert.Nil(t, yoga.Trainer())
}

func TestFitnessClassEnrollment(t *testing.T) {
	c := NewFitnessClass("C1", "Spin", 1, "Friday")
	m1 := NewMember("M1", "A", 20, TierBasic, "")
	m2 := NewMember("M2", "B", 21, TierBasic, "")

	require.True(t, c.EnrollMember(m1))
	assert.Equal(t, 1, c.CurrentEnrollments())

	assert.False(t, c.EnrollMember(m1), "already enrolled")
	assert.False(t, c.EnrollMember(m2), "at capacity")
	assert.Equal(t, 1, c.CurrentEnrollments())
	assert.Equal(t, []*Member{m1}, c.EnrolledMembers())

	assert.False(t, c.CancelBooking(m2))
	assert.True(t, c.CancelBooking(m1))
	assert.Zero(t, c.CurrentEnrollments())
	assert.True(t, c.EnrollMember(m2))
}

func TestFitnessClassZeroCapacity(t *testing.T) {
	c := NewFitnessClass("C0", "Closed", 0, "")
	assert.True(t, c.Full())
	assert.False(t, c.EnrollMember(NewMember("M1", "A", 20, TierBasic, "")))
}

func TestFitnessClassAssignTrainerLastWriteWins(t *testing.T) {
	c := NewFitnessClass("C1", "Spin", 5, "Friday")
	a := NewTrainer("T1", "A", "Cycling")
	b := NewTrainer("T2", "B", "Cycling")

	c.AssignTrainer(a)
	c.AssignTrainer(b)
	assert.Same(t, b, c.Trainer())
}

func TestTransactionReceipt(t *testing.T) {
	useClock(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC))

	m := NewMember("M001", "John Doe", 30, TierPremium, "Weight Loss")
	tx := NewTransaction("T001", m, 50, "Premium Membership")

	assert.Equal(t,
		"Receipt for Transaction #T001\nMember: John Doe\nMembership: Premium Membership\nDate: 2024-02-29\nAmount Paid: $50.00\n",
		tx.GenerateReceipt())
}

func TestTransactionProcessPaymentOverwrites(t *testing.T) {
	first := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	later := first.AddDate(0, 1, 0)
	useClock(t, first, later)

	a := NewMember("M001", "John Doe", 30, TierPremium, "")
	b := NewMember("M002", "Jane Smith", 25, TierBasic, "")
	tx := NewTransaction("T001", a, 50, "Premium Membership")

	assert.True(t, tx.ProcessPayment(b, 30.5, "Basic Membership"))
	assert.Same(t, b, tx.Member)
	assert.Equal(t, 30.5, tx.AmountPaid)
	assert.Equal(t, later, tx.PaymentDate)
	assert.Contains(t, tx.GenerateReceipt(), "Amount Paid: $30.50")
}

func TestShortIDs(t *testing.T) {
	assert.Regexp(t, `^M\d{3}$`, NewMemberID())
	assert.Regexp(t, `^T\d{4}$`, NewTransactionID())
}
