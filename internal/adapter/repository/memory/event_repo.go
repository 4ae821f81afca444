package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
)

// EventRepository is an in-process, append-only event log. Writers are
// serialized by mu. Readers hold the read lock only long enough to capture a
// slice header; stored events are never modified and appends only write past
// every captured length, so readers work on a stable view without blocking
// writers for the rest of the call.
type EventRepository struct {
	mu          sync.RWMutex
	byAggregate map[string][]domain.FinancialEvent
	sequences   map[string]map[int64]struct{}
	lastSeq     map[string]int64
	all         []domain.FinancialEvent
	strict      bool
}

// Option configures an EventRepository.
type Option func(*EventRepository)

// WithStrictSequence controls whether every appended sequence must exceed the
// aggregate's last one. When disabled, out-of-order but unique sequences are
// accepted, e.g. while backfilling from another log.
func WithStrictSequence(strict bool) Option {
	return func(r *EventRepository) {
		r.strict = strict
	}
}

// NewEventRepository creates an empty event log in strict mode.
func NewEventRepository(opts ...Option) *EventRepository {
	r := &EventRepository{
		byAggregate: make(map[string][]domain.FinancialEvent),
		sequences:   make(map[string]map[int64]struct{}),
		lastSeq:     make(map[string]int64),
		strict:      true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ usecase.EventRepository = (*EventRepository)(nil)

// Append implements usecase.EventRepository.
func (r *EventRepository) Append(event domain.FinancialEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	event = event.Detach()

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := r.sequences[event.AggregateID]
	if _, dup := seen[event.Sequence]; dup {
		return fmt.Errorf("%w: aggregate %s sequence %d", domain.ErrDuplicateSequence, event.AggregateID, event.Sequence)
	}
	last := r.lastSeq[event.AggregateID]
	if r.strict && event.Sequence <= last {
		return fmt.Errorf("%w: aggregate %s sequence %d after %d", domain.ErrNonMonotonicSequence, event.AggregateID, event.Sequence, last)
	}

	if seen == nil {
		seen = make(map[int64]struct{})
		r.sequences[event.AggregateID] = seen
	}
	seen[event.Sequence] = struct{}{}
	if event.Sequence > last {
		r.lastSeq[event.AggregateID] = event.Sequence
	}

	r.byAggregate[event.AggregateID] = append(r.byAggregate[event.AggregateID], event)
	r.all = append(r.all, event)

	return nil
}

// GetEvents implements usecase.EventRepository.
func (r *EventRepository) GetEvents(aggregateID string, fromSequence int64, toSequence *int64) []domain.FinancialEvent {
	r.mu.RLock()
	stream := r.byAggregate[aggregateID]
	sorted := !r.strict
	r.mu.RUnlock()

	events := make([]domain.FinancialEvent, 0, len(stream))
	for _, evt := range stream {
		if evt.Sequence < fromSequence {
			continue
		}
		if toSequence != nil && evt.Sequence > *toSequence {
			continue
		}
		events = append(events, evt)
	}

	// Strict streams are already in sequence order.
	if sorted {
		sort.Slice(events, func(i, j int) bool { return events[i].Sequence < events[j].Sequence })
	}

	return events
}

// GetAllEvents implements usecase.EventRepository.
func (r *EventRepository) GetAllEvents(filter usecase.EventFilter) []domain.FinancialEvent {
	r.mu.RLock()
	stream := r.all
	r.mu.RUnlock()

	events := make([]domain.FinancialEvent, 0, len(stream))
	for _, evt := range stream {
		if filter.Matches(evt) {
			events = append(events, evt)
		}
	}

	// Stable: events with equal timestamps stay in append order.
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })

	return events
}

// GetEventCount implements usecase.EventRepository.
func (r *EventRepository) GetEventCount(aggregateID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if aggregateID == "" {
		return len(r.all)
	}
	return len(r.byAggregate[aggregateID])
}

// LastSequence implements usecase.EventRepository.
func (r *EventRepository) LastSequence(aggregateID string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastSeq[aggregateID]
}

// Clear drops every event. It exists for tests only: the log is append-only
// and production code must never call it.
func (r *EventRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byAggregate = make(map[string][]domain.FinancialEvent)
	r.sequences = make(map[string]map[int64]struct{})
	r.lastSeq = make(map[string]int64)
	r.all = nil
}
