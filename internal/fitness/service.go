// internal/fitness/service.go
package fitness

import (
	"context"
)

// Service defines the registry operations over members, trainers, classes
// and transactions.
type Service interface {
	RegisterMember(ctx context.Context, m *Member) bool
	ViewMembers(ctx context.Context) []*Member
	FindMemberByID(ctx context.Context, id string) (*Member, bool)
	CancelMembership(ctx context.Context, id string, opts ...CancelOption) bool
	ViewMemberProgress(ctx context.Context, id string) []ProgressEntry
	TrackMemberProgress(ctx context.Context, memberID string, data map[string]any) (ProgressEntry, error)
	LogMemberWorkout(ctx context.Context, memberID string, w Workout) (Workout, error)
	LogMemberMeal(ctx context.Context, memberID string, meal Meal) (Meal, error)
	SetMemberGoal(ctx context.Context, memberID string, g Goal) (Goal, error)
	UpdateMemberGoalProgress(ctx context.Context, memberID, goalID string, pct float64) error
	MemberActivity(ctx context.Context, memberID string) (Activity, error)
	MemberHistory(ctx context.Context, memberID string) (MemberHistory, error)

	AddTrainer(ctx context.Context, t *Trainer) bool
	ViewTrainers(ctx context.Context) []*Trainer
	FindTrainerByID(ctx context.Context, id string) (*Trainer, bool)

	ScheduleClass(ctx context.Context, c *FitnessClass) bool
	ViewClasses(ctx context.Context) []*FitnessClass
	FindClassByID(ctx context.Context, id string) (*FitnessClass, bool)
	EnrollMemberInClass(ctx context.Context, memberID, classID string) error
	CancelEnrollment(ctx context.Context, memberID, classID string) error
	AssignTrainerToClass(ctx context.Context, trainerID, classID string) error

	AddTransaction(ctx context.Context, t *Transaction) bool
	ViewTransactions(ctx context.Context) []*Transaction
	MemberTransactions(ctx context.Context, memberID string) []*Transaction

	GenerateRevenueReport(ctx context.Context) RevenueReport
	MembershipDistribution(ctx context.Context) MembershipDistribution
}
