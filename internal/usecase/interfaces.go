package usecase

import (
	"time"

	"github.com/iho/hoaledger/internal/domain"
)

// EventRepository is the append-only event log.
type EventRepository interface {
	// Append stores event at the end of its aggregate stream and the global
	// stream. It rejects invalid events and sequences that would break the
	// stream's ordering; it never renumbers.
	Append(event domain.FinancialEvent) error
	// GetEvents returns the aggregate's events with sequence in
	// [fromSequence, toSequence], ascending. A nil toSequence is unbounded.
	GetEvents(aggregateID string, fromSequence int64, toSequence *int64) []domain.FinancialEvent
	// GetAllEvents returns the filtered global stream ordered by timestamp.
	GetAllEvents(filter EventFilter) []domain.FinancialEvent
	// GetEventCount counts one aggregate's events, or all events when
	// aggregateID is empty.
	GetEventCount(aggregateID string) int
	// LastSequence returns the highest sequence in the aggregate stream, or 0.
	LastSequence(aggregateID string) int64
}

// SnapshotRepository keeps the latest snapshot per aggregate.
type SnapshotRepository interface {
	// Save stores snapshot as the latest for its aggregate unless a snapshot
	// covering more of the stream is already stored. It reports whether the
	// snapshot was stored.
	Save(snapshot domain.Snapshot) bool
	GetLatest(aggregateID string) (domain.Snapshot, bool)
	// Delete drops the aggregate's snapshot, if any. Replay then starts from
	// the first event until a new snapshot is taken.
	Delete(aggregateID string)
}

// Folder folds one event into aggregate state. Implementations must be pure:
// the input state is never modified and the same inputs give the same output.
type Folder interface {
	Apply(state domain.State, event domain.FinancialEvent) (domain.State, error)
}

// EventValidator is implemented by folders that can tell, before an event is
// appended, whether they will be able to fold it.
type EventValidator interface {
	Validate(event domain.FinancialEvent) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder receives operational measurements.
type MetricsRecorder interface {
	EventAppended(eventType domain.EventType)
	EventRejected(reason string)
	SnapshotCreated(reason domain.SnapshotReason)
	ReplayObserved(mode string, applied int, elapsed time.Duration)
	ReconstructionPerformed(kind string)
}

// EventFilter narrows GetAllEvents. Zero-valued fields do not filter; set
// fields combine with AND.
type EventFilter struct {
	FromTimestamp *time.Time
	ToTimestamp   *time.Time
	TenantID      string
	EventType     domain.EventType
}

// Matches reports whether event passes every set filter.
func (f EventFilter) Matches(event domain.FinancialEvent) bool {
	if f.TenantID != "" && event.TenantID != f.TenantID {
		return false
	}
	if f.EventType != "" && event.EventType != f.EventType {
		return false
	}
	if f.FromTimestamp != nil && event.Timestamp.Before(*f.FromTimestamp) {
		return false
	}
	if f.ToTimestamp != nil && event.Timestamp.After(*f.ToTimestamp) {
		return false
	}
	return true
}

type nopMetrics struct{}

func (nopMetrics) EventAppended(domain.EventType) {}
func (nopMetrics) EventRejected(string) {}
func (nopMetrics) SnapshotCreated(domain.SnapshotReason) {}
func (nopMetrics) ReplayObserved(string, int, time.Duration) {}
func (nopMetrics) ReconstructionPerformed(string) {}
