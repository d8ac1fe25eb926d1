package fitness

import (
	"github.com/google/uuid"
)

// NewMember creates a member with empty logs and no bookings.
func NewMember(id, name string, age int, tier Tier, goal string) *Member {
	return &Member{
		ID:          id,
		Name:        name,
		Age:         age,
		Tier:        tier,
		FitnessGoal: goal,
	}
}

// UpdateMembership overwrites the tier.
func (m *Member) UpdateMembership(tier Tier) {
	m.Tier = tier
}

// BookClass records c in the member's bookings. It returns false if c is
// already booked. Class-side enrollment is not touched.
func (m *Member) BookClass(c *FitnessClass) bool {
	if m.bookedIndex(c.ID) >= 0 {
		return false
	}
	m.bookings = append(m.bookings, c)
	return true
}

// CancelClass removes c from the member's bookings.
func (m *Member) CancelClass(c *FitnessClass) bool {
	i := m.bookedIndex(c.ID)
	if i < 0 {
		return false
	}
	m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
	return true
}

// Bookings returns the booked classes in booking order.
func (m *Member) Bookings() []*FitnessClass {
	return append([]*FitnessClass(nil), m.bookings...)
}

func (m *Member) bookedIndex(classID string) int {
	for i, c := range m.bookings {
		if c.ID == classID {
			return i
		}
	}
	return -1
}

// TrackProgress stamps data with the current time and appends it to the
// progress log. The map is copied so later caller mutations do not leak in.
func (m *Member) TrackProgress(data map[string]any) ProgressEntry {
	entry := ProgressEntry{
		ID:   uuid.NewString(),
		Date: now(),
		Data: cloneFields(data),
	}
	m.progress = append(m.progress, entry)
	return entry
}

// Progress returns the progress log, oldest first.
func (m *Member) Progress() []ProgressEntry {
	return append([]ProgressEntry(nil), m.progress...)
}

// LogWorkout appends w to the workout log, filling in ID and Date if unset.
func (m *Member) LogWorkout(w Workout) Workout {
	w.ID, w.Date = stamp(w.ID, w.Date)
	w.Extra = cloneFields(w.Extra)
	m.workouts = append(m.workouts, w)
	return w
}

// Workouts returns the workout log, oldest first.
func (m *Member) Workouts() []Workout {
	return append([]Workout(nil), m.workouts...)
}

// LogMeal appends meal to the nutrition log, filling in ID and Date if unset.
func (m *Member) LogMeal(meal Meal) Meal {
	meal.ID, meal.Date = stamp(meal.ID, meal.Date)
	meal.Extra = cloneFields(meal.Extra)
	m.meals = append(m.meals, meal)
	return meal
}

// Meals returns the nutrition log, oldest first.
func (m *Member) Meals() []Meal {
	return append([]Meal(nil), m.meals...)
}

// SetGoal appends g to the member's goals, filling in ID and Date if unset.
func (m *Member) SetGoal(g Goal) Goal {
	g.ID, g.Date = stamp(g.ID, g.Date)
	g.Extra = cloneFields(g.Extra)
	m.goals = append(m.goals, g)
	return g
}

// Goals returns the member's goals in the order they were set.
func (m *Member) Goals() []Goal {
	return append([]Goal(nil), m.goals...)
}

// UpdateGoalProgress sets the progress percentage of the goal with goalID.
func (m *Member) UpdateGoalProgress(goalID string, pct float64) bool {
	for i := range m.goals {
		if m.goals[i].ID == goalID {
			m.goals[i].ProgressPct = pct
			return true
		}
	}
	return false
}
