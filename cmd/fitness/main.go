// cmd/fitness/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"fitnessmanager/internal/config"
	"fitnessmanager/internal/fitness"
	"fitnessmanager/internal/journal"
	"fitnessmanager/internal/logging"
	"fitnessmanager/internal/sampledata"
	"fitnessmanager/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up telemetry")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	metrics, err := telemetry.NewRegistryMetrics(otel.Meter("fitnessmanager/fitness"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create registry metrics")
	}

	events := journal.New()
	registry := fitness.NewRegistry(
		fitness.WithJournal(events),
		fitness.WithLogger(logging.Component(logger, "registry")),
		fitness.WithMetrics(metrics),
	)

	if cfg.SeedSampleData {
		if err := sampledata.Load(ctx, registry); err != nil {
			logger.Fatal().Err(err).Msg("failed to load sample data")
		}
		logger.Info().Int("members", len(registry.ViewMembers(ctx))).Msg("sample data loaded")
	}

	printSummary(ctx, registry)

	recorded, err := events.StreamEvents(ctx, 0, 1000)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read journal")
		return
	}
	logger.Info().Int("events", len(recorded)).Msg("journal summary")
}

func printSummary(ctx context.Context, svc fitness.Service) {
	fmt.Println("--- Revenue Report ---")
	fmt.Print(svc.GenerateRevenueReport(ctx))
	fmt.Println()
	fmt.Print(svc.MembershipDistribution(ctx))

	for _, t := range svc.ViewTransactions(ctx) {
		fmt.Println()
		fmt.Print(t.GenerateReceipt())
	}

	for _, m := range svc.ViewMembers(ctx) {
		fmt.Println()
		fmt.Println(fitness.FormatProgress(m.ID, svc.ViewMemberProgress(ctx, m.ID)))
	}
}
