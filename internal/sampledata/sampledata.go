// Package sampledata seeds a registry with the front desk's demo roster.
package sampledata

import (
	"context"
	"fmt"

	"fitnessmanager/internal/fitness"
)

// Load registers two members with progress history, two trainers, two
// classes led by those trainers, and one membership payment per member.
func Load(ctx context.Context, svc fitness.Service) error {
	john := fitness.NewMember("M001", "John Doe", 30, fitness.TierPremium, "Weight Loss")
	jane := fitness.NewMember("M002", "Jane Smith", 25, fitness.TierBasic, "Muscle Gain")
	for _, m := range []*fitness.Member{john, jane} {
		if !svc.RegisterMember(ctx, m) {
			return fmt.Errorf("register member %s: already registered", m.ID)
		}
	}

	for _, data := range []map[string]any{
		{"weight": 80, "running_speed": 10},
		{"weight": 78, "running_speed": 11},
	} {
		if _, err := svc.TrackMemberProgress(ctx, john.ID, data); err != nil {
			return fmt.Errorf("track progress: %w", err)
		}
	}

	trainers := []*fitness.Trainer{
		fitness.NewTrainer("T001", "Mike Johnson", "Yoga"),
		fitness.NewTrainer("T002", "Sara Brown", "Strength Training"),
	}
	for _, t := range trainers {
		if !svc.AddTrainer(ctx, t) {
			return fmt.Errorf("add trainer %s: already added", t.ID)
		}
	}

	classes := []*fitness.FitnessClass{
		fitness.NewFitnessClass("C001", "Morning Yoga", 15, "Monday, 8:00 AM"),
		fitness.NewFitnessClass("C002", "HIIT Training", 10, "Tuesday, 6:00 PM"),
	}
	for i, c := range classes {
		if !svc.ScheduleClass(ctx, c) {
			return fmt.Errorf("schedule class %s: already scheduled", c.ID)
		}
		if err := svc.AssignTrainerToClass(ctx, trainers[i].ID, c.ID); err != nil {
			return fmt.Errorf("assign trainer: %w", err)
		}
	}

	svc.AddTransaction(ctx, fitness.NewTransaction("T001", john, 50.00, "Premium Membership"))
	svc.AddTransaction(ctx, fitness.NewTransaction("T002", jane, 30.00, "Basic Membership"))
	return nil
}
