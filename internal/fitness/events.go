// internal/fitness/events.go
package fitness

import "time"

// Aggregate types used as journal stream names.
const (
	aggregateMember      = "member"
	aggregateTrainer     = "trainer"
	aggregateClass       = "class"
	aggregateTransaction = "transaction"
)

// MemberRegisteredEvent is recorded when a member joins the registry.
type MemberRegisteredEvent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tier Tier   `json:"membership_tier"`
}

// MembershipCancelledEvent is recorded when a member leaves the registry.
type MembershipCancelledEvent struct {
	ID               string   `json:"id"`
	Cascade          bool     `json:"cascade"`
	ReleasedClassIDs []string `json:"released_class_ids,omitempty"`
}

// ProgressTrackedEvent is recorded when a progress entry is appended.
type ProgressTrackedEvent struct {
	MemberID string         `json:"member_id"`
	EntryID  string         `json:"entry_id"`
	Date     time.Time      `json:"date"`
	Data     map[string]any `json:"data"`
}

// WorkoutLoggedEvent is recorded when a workout is logged through the registry.
type WorkoutLoggedEvent struct {
	MemberID string  `json:"member_id"`
	Workout  Workout `json:"workout"`
}

// MealLoggedEvent is recorded when a meal is logged through the registry.
type MealLoggedEvent struct {
	MemberID string `json:"member_id"`
	Meal     Meal   `json:"meal"`
}

// GoalSetEvent is recorded when a goal is added.
type GoalSetEvent struct {
	MemberID string `json:"member_id"`
	Goal     Goal   `json:"goal"`
}

// GoalProgressUpdatedEvent is recorded when a goal's completion changes.
type GoalProgressUpdatedEvent struct {
	MemberID    string  `json:"member_id"`
	GoalID      string  `json:"goal_id"`
	ProgressPct float64 `json:"progress_pct"`
}

// TrainerAddedEvent is recorded when a trainer joins the registry.
type TrainerAddedEvent struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// ClassScheduledEvent is recorded when a class is added to the timetable.
type ClassScheduledEvent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Schedule string `json:"schedule"`
}

// MemberEnrolledEvent is recorded against the class when a seat is taken.
type MemberEnrolledEvent struct {
	ClassID  string `json:"class_id"`
	MemberID string `json:"member_id"`
	Seats    int    `json:"seats_taken"`
}

// EnrollmentCancelledEvent is recorded against the class when a seat is released.
type EnrollmentCancelledEvent struct {
	ClassID  string `json:"class_id"`
	MemberID string `json:"member_id"`
}

// TrainerAssignedEvent is recorded against the class when its trainer changes.
type TrainerAssignedEvent struct {
	ClassID           string `json:"class_id"`
	TrainerID         string `json:"trainer_id"`
	PreviousTrainerID string `json:"previous_trainer_id,omitempty"`
}

// PaymentRecordedEvent is recorded when a transaction is added.
type PaymentRecordedEvent struct {
	ID       string  `json:"id"`
	MemberID string  `json:"member_id,omitempty"`
	Amount   float64 `json:"amount"`
	Service  string  `json:"service"`
}
