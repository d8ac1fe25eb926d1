package fitness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// GenerateRevenueReport totals all payments, counts registered members and
// picks the class with the most enrollments. Ties go to the class scheduled
// first.
func (r *Registry) GenerateRevenueReport(ctx context.Context) RevenueReport {
	_, span := r.tracer.Start(ctx, "registry.revenue_report")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	report := RevenueReport{ActiveMembers: len(r.members)}
	for _, t := range r.transactions {
		report.TotalRevenue += t.AmountPaid
	}

	for _, c := range r.classes {
		n := c.CurrentEnrollments()
		if report.TopClass == nil || n > report.TopClass.Enrollments {
			report.TopClass = &ClassPopularity{Name: c.Name, Enrollments: n}
		}
	}

	span.SetAttributes(
		attribute.Float64("report.total_revenue", report.TotalRevenue),
		attribute.Int("report.active_members", report.ActiveMembers),
	)
	return report
}

// String renders the report the way the front desk prints it.
func (rr RevenueReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Revenue: $%.2f\n", rr.TotalRevenue)
	if rr.TopClass != nil {
		fmt.Fprintf(&b, "Top Class: %s (%d members)\n", rr.TopClass.Name, rr.TopClass.Enrollments)
	}
	fmt.Fprintf(&b, "Active Members: %d\n", rr.ActiveMembers)
	return b.String()
}

// MembershipDistribution counts registered members per tier.
type MembershipDistribution map[Tier]int

// MembershipDistribution counts the registered members by tier. The sold
// tiers are always present, at zero if nobody holds them; any other label
// in use gets its own entry.
func (r *Registry) MembershipDistribution(ctx context.Context) MembershipDistribution {
	_, span := r.tracer.Start(ctx, "registry.membership_distribution")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	d := MembershipDistribution{TierBasic: 0, TierPremium: 0, TierVIP: 0}
	for _, m := range r.members {
		d[m.Tier]++
	}
	return d
}

// String lists the sold tiers in price order, then other labels sorted.
func (d MembershipDistribution) String() string {
	tiers := []Tier{TierBasic, TierPremium, TierVIP}
	var other []Tier
	for t := range d {
		if !t.Known() {
			other = append(other, t)
		}
	}
	sort.Slice(other, func(i, j int) bool { return other[i] < other[j] })
	tiers = append(tiers, other...)

	var b strings.Builder
	b.WriteString("Membership Distribution:\n")
	for _, t := range tiers {
		fmt.Fprintf(&b, "  %s: %d\n", t, d[t])
	}
	return b.String()
}
