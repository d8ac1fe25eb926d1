package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RegistryMetrics holds the instruments updated by the registry. A nil
// *RegistryMetrics records nothing.
type RegistryMetrics struct {
	membersRegistered   metric.Int64Counter
	enrollmentsRejected metric.Int64Counter
	revenueRecorded     metric.Float64Counter
}

// NewRegistryMetrics creates the registry instruments on meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	registered, err := meter.Int64Counter("fitness.members.registered",
		metric.WithDescription("Members added to the registry"))
	if err != nil {
		return nil, fmt.Errorf("create members counter: %w", err)
	}

	rejected, err := meter.Int64Counter("fitness.enrollments.rejected",
		metric.WithDescription("Class enrollments refused, by reason"))
	if err != nil {
		return nil, fmt.Errorf("create rejections counter: %w", err)
	}

	revenue, err := meter.Float64Counter("fitness.revenue.recorded",
		metric.WithDescription("Payment amounts recorded"),
		metric.WithUnit("{USD}"))
	if err != nil {
		return nil, fmt.Errorf("create revenue counter: %w", err)
	}

	return &RegistryMetrics{
		membersRegistered:   registered,
		enrollmentsRejected: rejected,
		revenueRecorded:     revenue,
	}, nil
}

// MemberRegistered counts one new member.
func (m *RegistryMetrics) MemberRegistered(ctx context.Context) {
	if m == nil {
		return
	}
	m.membersRegistered.Add(ctx, 1)
}

// EnrollmentRejected counts a refused enrollment under reason.
func (m *RegistryMetrics) EnrollmentRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.enrollmentsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RevenueRecorded adds amount to the revenue counter. Counters are
// monotonic, so negative amounts are skipped.
func (m *RegistryMetrics) RevenueRecorded(ctx context.Context, amount float64) {
	if m == nil || amount < 0 {
		return
	}
	m.revenueRecorded.Add(ctx, amount)
}
