// internal/fitness/domain.go
package fitness

import (
	"time"
)

// now is swapped in tests for deterministic timestamps.
var now = time.Now

// Tier is a membership category. Any label is accepted; the constants are
// the ones the facility sells.
type Tier string

const (
	TierBasic   Tier = "Basic"
	TierPremium Tier = "Premium"
	TierVIP     Tier = "VIP"
)

// Known reports whether t is one of the sold tiers.
func (t Tier) Known() bool {
	switch t {
	case TierBasic, TierPremium, TierVIP:
		return true
	}
	return false
}

// Member represents a person enrolled at the facility.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Tier        Tier   `json:"membership_tier"`
	FitnessGoal string `json:"fitness_goal"`

	bookings []*FitnessClass
	progress []ProgressEntry
	workouts []Workout
	meals    []Meal
	goals    []Goal
}

// Trainer is a staff specialist who leads classes.
type Trainer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`

	classes []*FitnessClass
}

// FitnessClass is a scheduled session with a fixed number of seats.
type FitnessClass struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Schedule string `json:"schedule"`

	trainer  *Trainer
	enrolled []*Member
}

// Transaction is a payment made by a member.
type Transaction struct {
	ID          string    `json:"id"`
	Member      *Member   `json:"-"`
	AmountPaid  float64   `json:"amount_paid"`
	Service     string    `json:"service"`
	PaymentDate time.Time `json:"payment_date"`
}

// ProgressEntry is one free-form data point in a member's progress log.
type ProgressEntry struct {
	ID   string         `json:"id"`
	Date time.Time      `json:"date"`
	Data map[string]any `json:"data"`
}

// Workout is a logged exercise session.
type Workout struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	ExerciseType string         `json:"exercise_type"`
	DurationMin  int            `json:"duration_min"`
	Calories     int            `json:"calories"`
	Notes        string         `json:"notes,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Meal is a logged meal with its macro breakdown in grams.
type Meal struct {
	ID        string         `json:"id"`
	Date      time.Time      `json:"date"`
	MealType  string         `json:"meal_type"`
	FoodItems string         `json:"food_items"`
	Calories  int            `json:"calories"`
	ProteinG  float64        `json:"protein_g"`
	CarbsG    float64        `json:"carbs_g"`
	FatG      float64        `json:"fat_g"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Goal is a target a member is working towards.
type Goal struct {
	ID            string         `json:"id"`
	Date          time.Time      `json:"date"`
	GoalType      string         `json:"goal_type"`
	Target        string         `json:"target"`
	DurationWeeks int            `json:"duration_weeks"`
	ProgressPct   float64        `json:"progress_pct"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// ClassPopularity names a class and its current enrollment.
type ClassPopularity struct {
	Name        string `json:"name"`
	Enrollments int    `json:"enrollments"`
}

// RevenueReport summarises payments, membership and class demand.
type RevenueReport struct {
	TotalRevenue  float64          `json:"total_revenue"`
	TopClass      *ClassPopularity `json:"top_class,omitempty"`
	ActiveMembers int              `json:"active_members"`
}
