// internal/fitness/implementation.go
package fitness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fitnessmanager/internal/journal"
	"fitnessmanager/internal/telemetry"
)

// Registry is the aggregate root holding members, trainers, classes and
// transactions. Entities are keyed by identifier and listed in the order
// they were added. Every registry operation, including the member log
// operations, runs under a single lock. Calling entity methods directly on a
// registered member bypasses that lock.
type Registry struct {
	mu           sync.RWMutex
	members      []*Member
	memberByID   map[string]*Member
	trainers     []*Trainer
	trainerByID  map[string]*Trainer
	classes      []*FitnessClass
	classByID    map[string]*FitnessClass
	transactions []*Transaction

	journal *journal.Journal
	logger  zerolog.Logger
	tracer  trace.Tracer
	metrics *telemetry.RegistryMetrics
}

var _ Service = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithJournal records every state change as a domain event in j.
func WithJournal(j *journal.Journal) Option {
	return func(r *Registry) { r.journal = j }
}

// WithLogger sets the logger used for rejections and journal failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics sets the instruments updated by registry operations.
func WithMetrics(m *telemetry.RegistryMetrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		memberByID:  make(map[string]*Member),
		trainerByID: make(map[string]*Trainer),
		classByID:   make(map[string]*FitnessClass),
		logger:      zerolog.Nop(),
		tracer:      otel.Tracer("fitnessmanager/fitness"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CancelOption configures CancelMembership.
type CancelOption func(*cancelConfig)

type cancelConfig struct {
	cascade bool
}

// WithCascade also releases the member's class seats and bookings.
// Transactions are kept as payment history either way.
func WithCascade() CancelOption {
	return func(c *cancelConfig) { c.cascade = true }
}

// RegisterMember adds m unless a member with the same ID is registered.
func (r *Registry) RegisterMember(ctx context.Context, m *Member) bool {
	ctx, span := r.tracer.Start(ctx, "registry.register_member",
		trace.WithAttributes(attribute.String("member.id", m.ID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memberByID[m.ID]; exists {
		r.logger.Info().Str("member_id", m.ID).Msg("duplicate member registration rejected")
		span.SetAttributes(attribute.Bool("duplicate", true))
		return false
	}

	r.members = append(r.members, m)
	r.memberByID[m.ID] = m
	r.metrics.MemberRegistered(ctx)
	r.record(ctx, aggregateMember, m.ID, "MemberRegistered", MemberRegisteredEvent{
		ID:   m.ID,
		Name: m.Name,
		Tier: m.Tier,
	})
	r.logger.Debug().Str("member_id", m.ID).Str("tier", string(m.Tier)).Msg("member registered")
	return true
}

// ViewMembers returns the registered members in registration order.
func (r *Registry) ViewMembers(ctx context.Context) []*Member {
	_, span := r.tracer.Start(ctx, "registry.view_members")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Member(nil), r.members...)
}

// FindMemberByID returns the live member with id.
func (r *Registry) FindMemberByID(ctx context.Context, id string) (*Member, bool) {
	_, span := r.tracer.Start(ctx, "registry.find_member",
		trace.WithAttributes(attribute.String("member.id", id)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.memberByID[id]
	return m, ok
}

// CancelMembership removes the member with id from the registry. By default
// nothing else is touched, so classes may still hold the member's seat; pass
// WithCascade to release those too.
func (r *Registry) CancelMembership(ctx context.Context, id string, opts ...CancelOption) bool {
	var cfg cancelConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := r.tracer.Start(ctx, "registry.cancel_membership",
		trace.WithAttributes(
			attribute.String("member.id", id),
			attribute.Bool("cascade", cfg.cascade),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memberByID[id]
	if !ok {
		r.logger.Info().Str("member_id", id).Msg("cancel membership: member not found")
		return false
	}

	for i, candidate := range r.members {
		if candidate.ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	delete(r.memberByID, id)

	final := stateOf(m)

	var released []string
	if cfg.cascade {
		// Scheduled classes first, then bookings on classes that never
		// made it onto the timetable.
		classes := append([]*FitnessClass(nil), r.classes...)
		for _, c := range m.Bookings() {
			if _, scheduled := r.classByID[c.ID]; !scheduled {
				classes = append(classes, c)
			}
		}
		for _, c := range classes {
			seat := c.CancelBooking(m)
			booking := m.CancelClass(c)
			if seat || booking {
				released = append(released, c.ID)
			}
			if seat {
				r.record(ctx, aggregateClass, c.ID, "EnrollmentCancelled", EnrollmentCancelledEvent{
					ClassID:  c.ID,
					MemberID: id,
				})
			}
		}
	}

	r.record(ctx, aggregateMember, id, "MembershipCancelled", MembershipCancelledEvent{
		ID:               id,
		Cascade:          cfg.cascade,
		ReleasedClassIDs: released,
	})
	r.snapshotMember(ctx, final)
	r.logger.Debug().Str("member_id", id).Bool("cascade", cfg.cascade).Strs("released_classes", released).Msg("membership cancelled")
	return true
}

// ViewMemberProgress returns the progress log of the member with id, or an
// empty log when no such member is registered.
func (r *Registry) ViewMemberProgress(ctx context.Context, id string) []ProgressEntry {
	_, span := r.tracer.Start(ctx, "registry.view_progress",
		trace.WithAttributes(attribute.String("member.id", id)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.memberByID[id]
	if !ok {
		return []ProgressEntry{}
	}
	progress := m.Progress()
	if progress == nil {
		return []ProgressEntry{}
	}
	return progress
}

// AddTrainer adds t unless a trainer with the same ID exists.
func (r *Registry) AddTrainer(ctx context.Context, t *Trainer) bool {
	ctx, span := r.tracer.Start(ctx, "registry.add_trainer",
		trace.WithAttributes(attribute.String("trainer.id", t.ID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trainerByID[t.ID]; exists {
		r.logger.Info().Str("trainer_id", t.ID).Msg("duplicate trainer rejected")
		return false
	}

	r.trainers = append(r.trainers, t)
	r.trainerByID[t.ID] = t
	r.record(ctx, aggregateTrainer, t.ID, "TrainerAdded", TrainerAddedEvent{
		ID:             t.ID,
		Name:           t.Name,
		Specialization: t.Specialization,
	})
	return true
}

// ViewTrainers returns the trainers in the order they were added.
func (r *Registry) ViewTrainers(ctx context.Context) []*Trainer {
	_, span := r.tracer.Start(ctx, "registry.view_trainers")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Trainer(nil), r.trainers...)
}

// FindTrainerByID returns the live trainer with id.
func (r *Registry) FindTrainerByID(ctx context.Context, id string) (*Trainer, bool) {
	_, span := r.tracer.Start(ctx, "registry.find_trainer",
		trace.WithAttributes(attribute.String("trainer.id", id)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trainerByID[id]
	return t, ok
}

// ScheduleClass adds c to the timetable unless a class with the same ID exists.
func (r *Registry) ScheduleClass(ctx context.Context, c *FitnessClass) bool {
	ctx, span := r.tracer.Start(ctx, "registry.schedule_class",
		trace.WithAttributes(
			attribute.String("class.id", c.ID),
			attribute.Int("class.capacity", c.Capacity),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classByID[c.ID]; exists {
		r.logger.Info().Str("class_id", c.ID).Msg("duplicate class rejected")
		return false
	}

	r.classes = append(r.classes, c)
	r.classByID[c.ID] = c
	r.record(ctx, aggregateClass, c.ID, "ClassScheduled", ClassScheduledEvent{
		ID:       c.ID,
		Name:     c.Name,
		Capacity: c.Capacity,
		Schedule: c.Schedule,
	})
	return true
}

// ViewClasses returns the timetable in scheduling order.
func (r *Registry) ViewClasses(ctx context.Context) []*FitnessClass {
	_, span := r.tracer.Start(ctx, "registry.view_classes")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*FitnessClass(nil), r.classes...)
}

// FindClassByID returns the live class with id.
func (r *Registry) FindClassByID(ctx context.Context, id string) (*FitnessClass, bool) {
	_, span := r.tracer.Start(ctx, "registry.find_class",
		trace.WithAttributes(attribute.String("class.id", id)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classByID[id]
	return c, ok
}

// EnrollMemberInClass takes a seat in the class and records the booking on
// the member in one step.
func (r *Registry) EnrollMemberInClass(ctx context.Context, memberID, classID string) error {
	ctx, span := r.tracer.Start(ctx, "registry.enroll",
		trace.WithAttributes(
			attribute.String("member.id", memberID),
			attribute.String("class.id", classID),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.enrollLocked(ctx, memberID, classID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.logger.Info().Err(err).Str("member_id", memberID).Str("class_id", classID).Msg("enrollment rejected")
	}
	return err
}

func (r *Registry) enrollLocked(ctx context.Context, memberID, classID string) error {
	m, ok := r.memberByID[memberID]
	if !ok {
		return fmt.Errorf("enroll %s: %w", memberID, ErrMemberNotFound)
	}
	c, ok := r.classByID[classID]
	if !ok {
		return fmt.Errorf("enroll in %s: %w", classID, ErrClassNotFound)
	}

	if c.IsEnrolled(memberID) {
		r.metrics.EnrollmentRejected(ctx, "already_enrolled")
		return fmt.Errorf("enroll %s in %s: %w", memberID, classID, ErrAlreadyEnrolled)
	}
	if !c.EnrollMember(m) {
		r.metrics.EnrollmentRejected(ctx, "full")
		return fmt.Errorf("enroll %s in %s: %w", memberID, classID, ErrClassFull)
	}
	m.BookClass(c)

	r.record(ctx, aggregateClass, classID, "MemberEnrolled", MemberEnrolledEvent{
		ClassID:  classID,
		MemberID: memberID,
		Seats:    c.CurrentEnrollments(),
	})
	return nil
}

// CancelEnrollment releases the member's seat and booking. Either side
// alone is enough to succeed, so out-of-sync pairs are repaired.
func (r *Registry) CancelEnrollment(ctx context.Context, memberID, classID string) error {
	ctx, span := r.tracer.Start(ctx, "registry.cancel_enrollment",
		trace.WithAttributes(
			attribute.String("member.id", memberID),
			attribute.String("class.id", classID),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.memberByID[memberID]
	if !ok {
		return fmt.Errorf("cancel enrollment of %s: %w", memberID, ErrMemberNotFound)
	}
	c, ok := r.classByID[classID]
	if !ok {
		return fmt.Errorf("cancel enrollment in %s: %w", classID, ErrClassNotFound)
	}

	seat := c.CancelBooking(m)
	booking := m.CancelClass(c)
	if !seat && !booking {
		return fmt.Errorf("cancel enrollment of %s in %s: %w", memberID, classID, ErrNotEnrolled)
	}

	r.record(ctx, aggregateClass, classID, "EnrollmentCancelled", EnrollmentCancelledEvent{
		ClassID:  classID,
		MemberID: memberID,
	})
	return nil
}

// AssignTrainerToClass makes the trainer lead the class, updating both the
// class and the trainer schedules. A previous trainer loses the class.
func (r *Registry) AssignTrainerToClass(ctx context.Context, trainerID, classID string) error {
	ctx, span := r.tracer.Start(ctx, "registry.assign_trainer",
		trace.WithAttributes(
			attribute.String("trainer.id", trainerID),
			attribute.String("class.id", classID),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trainerByID[trainerID]
	if !ok {
		return fmt.Errorf("assign %s: %w", trainerID, ErrTrainerNotFound)
	}
	c, ok := r.classByID[classID]
	if !ok {
		return fmt.Errorf("assign to %s: %w", classID, ErrClassNotFound)
	}

	var previousID string
	if prev := c.Trainer(); prev != nil && prev.ID != t.ID {
		previousID = prev.ID
		prev.unassignClass(classID)
	}
	c.AssignTrainer(t)
	t.AssignClass(c)

	r.record(ctx, aggregateClass, classID, "TrainerAssigned", TrainerAssignedEvent{
		ClassID:           classID,
		TrainerID:         trainerID,
		PreviousTrainerID: previousID,
	})
	return nil
}

// AddTransaction appends t to the payment history. It always succeeds.
func (r *Registry) AddTransaction(ctx context.Context, t *Transaction) bool {
	ctx, span := r.tracer.Start(ctx, "registry.add_transaction",
		trace.WithAttributes(
			attribute.String("transaction.id", t.ID),
			attribute.Float64("transaction.amount", t.AmountPaid),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = append(r.transactions, t)
	r.metrics.RevenueRecorded(ctx, t.AmountPaid)

	event := PaymentRecordedEvent{
		ID:      t.ID,
		Amount:  t.AmountPaid,
		Service: t.Service,
	}
	if t.Member != nil {
		event.MemberID = t.Member.ID
	}
	r.record(ctx, aggregateTransaction, t.ID, "PaymentRecorded", event)
	return true
}

// ViewTransactions returns the payment history in the order it was recorded.
func (r *Registry) ViewTransactions(ctx context.Context) []*Transaction {
	_, span := r.tracer.Start(ctx, "registry.view_transactions")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Transaction(nil), r.transactions...)
}

// MemberTransactions returns the payments made by memberID, including those
// of members whose membership has since been cancelled.
func (r *Registry) MemberTransactions(ctx context.Context, memberID string) []*Transaction {
	_, span := r.tracer.Start(ctx, "registry.member_transactions",
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Transaction
	for _, t := range r.transactions {
		if t.Member != nil && t.Member.ID == memberID {
			out = append(out, t)
		}
	}
	return out
}

// record appends a single event to the aggregate's journal stream. Journal
// failures are logged and never fail the calling operation.
func (r *Registry) record(ctx context.Context, aggregateType, id, eventType string, payload any) {
	if r.journal == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event data")
		return
	}

	streamID := streamName(aggregateType, id)
	version, err := r.journal.GetCurrentVersion(ctx, streamID)
	if err == nil {
		err = r.journal.AppendEvents(ctx, streamID, aggregateType, version, []journal.Event{{
			EventType: eventType,
			EventData: data,
		}})
	}
	if err != nil {
		level := r.logger.Error()
		if errors.Is(err, journal.ErrConcurrencyConflict) {
			level = r.logger.Warn()
		}
		level.Err(err).Str("stream", streamID).Str("event_type", eventType).Msg("failed to append event")
	}
}

func streamName(aggregateType, id string) string {
	return aggregateType + "/" + id
}
