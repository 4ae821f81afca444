package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/hoaledger/internal/domain"
)

// ReplayUseCase rebuilds aggregate state from the event log, optionally
// starting from the latest snapshot.
type ReplayUseCase struct {
	eventRepo    EventRepository
	snapshotRepo SnapshotRepository
	folder       Folder
	idGen        IDGenerator
	metrics      MetricsRecorder
	logger       zerolog.Logger
	now          func() time.Time
}

// NewReplayUseCase creates a new ReplayUseCase. A nil folder selects the
// merge folder.
func NewReplayUseCase(
	eventRepo EventRepository,
	snapshotRepo SnapshotRepository,
	folder Folder,
	idGen IDGenerator,
) *ReplayUseCase {
	if folder == nil {
		folder = MergeFolder{}
	}
	return &ReplayUseCase{
		eventRepo:    eventRepo,
		snapshotRepo: snapshotRepo,
		folder:       folder,
		idGen:        idGen,
		metrics:      nopMetrics{},
		logger:       zerolog.Nop(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics sets the metrics recorder.
func (uc *ReplayUseCase) WithMetrics(m MetricsRecorder) *ReplayUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithLogger sets the logger.
func (uc *ReplayUseCase) WithLogger(logger zerolog.Logger) *ReplayUseCase {
	uc.logger = logger
	return uc
}

// WithClock overrides the clock used for snapshot timestamps.
func (uc *ReplayUseCase) WithClock(now func() time.Time) *ReplayUseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// ReplayAll folds every event of the aggregate, in sequence order, starting
// from an empty state. An unknown aggregate yields an empty state.
func (uc *ReplayUseCase) ReplayAll(aggregateID string) (domain.State, error) {
	start := time.Now()
	events := uc.eventRepo.GetEvents(aggregateID, 0, nil)

	state, err := uc.fold(domain.State{}, events)
	if err != nil {
		return nil, err
	}

	uc.metrics.ReplayObserved(ReplayModeAll, len(events), time.Since(start))
	return state, nil
}

// ReplayToDate folds the aggregate's events timestamped at or before the end
// of asOf's day (23:59:59 in asOf's location).
func (uc *ReplayUseCase) ReplayToDate(aggregateID string, asOf time.Time) (domain.State, error) {
	start := time.Now()
	endOfDay := domain.EndOfDay(asOf)

	events := uc.eventRepo.GetEvents(aggregateID, 0, nil)
	upToDate := make([]domain.FinancialEvent, 0, len(events))
	for _, evt := range events {
		if !evt.Timestamp.After(endOfDay) {
			upToDate = append(upToDate, evt)
		}
	}

	state, err := uc.fold(domain.State{}, upToDate)
	if err != nil {
		return nil, err
	}

	uc.metrics.ReplayObserved(ReplayModeToDate, len(upToDate), time.Since(start))
	return state, nil
}

// CreateSnapshotInput represents input for taking a snapshot.
type CreateSnapshotInput struct {
	AggregateID   string
	AggregateType string
	TenantID      string
	CreatedBy     string
	Reason        domain.SnapshotReason
}

// CreateSnapshot replays the whole aggregate and stores the result as its
// latest snapshot. State, LastEventSequence and EventCount come from the same
// read of the stream, so events appended concurrently are simply not covered.
// When a snapshot covering more of the stream is already stored, that one is
// returned and nothing is saved.
func (uc *ReplayUseCase) CreateSnapshot(input CreateSnapshotInput) (*domain.Snapshot, error) {
	switch {
	case strings.TrimSpace(input.AggregateID) == "":
		return nil, domain.ErrAggregateIDRequired
	case strings.TrimSpace(input.AggregateType) == "":
		return nil, domain.ErrAggregateTypeRequired
	case strings.TrimSpace(input.TenantID) == "":
		return nil, domain.ErrTenantIDRequired
	}
	if input.Reason == "" {
		input.Reason = domain.SnapshotReasonManual
	}

	start := time.Now()
	events := uc.eventRepo.GetEvents(input.AggregateID, 0, nil)

	state, err := uc.fold(domain.State{}, events)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", input.AggregateID, err)
	}

	var lastSequence int64
	if len(events) > 0 {
		lastSequence = events[len(events)-1].Sequence
	}

	snapshot := domain.Snapshot{
		SnapshotID:        uc.idGen.Generate(),
		AggregateID:       input.AggregateID,
		AggregateType:     input.AggregateType,
		TenantID:          input.TenantID,
		State:             state,
		LastEventSequence: lastSequence,
		EventCount:        len(events),
		SnapshotTimestamp: uc.now(),
		CreatedBy:         input.CreatedBy,
		Reason:            input.Reason,
	}

	uc.metrics.ReplayObserved(ReplayModeSnapshot, len(events), time.Since(start))

	if !uc.snapshotRepo.Save(snapshot) {
		uc.logger.Debug().
			Str("aggregate_id", input.AggregateID).
			Int64("last_event_sequence", lastSequence).
			Msg("newer snapshot already stored")
		if stored, ok := uc.snapshotRepo.GetLatest(input.AggregateID); ok {
			return &stored, nil
		}
		return &snapshot, nil
	}

	uc.metrics.SnapshotCreated(input.Reason)
	uc.logger.Info().
		Str("aggregate_id", input.AggregateID).
		Str("aggregate_type", input.AggregateType).
		Int64("last_event_sequence", lastSequence).
		Str("reason", string(input.Reason)).
		Msg("snapshot created")

	return &snapshot, nil
}

// GetSnapshot returns the latest snapshot for the aggregate, or nil.
func (uc *ReplayUseCase) GetSnapshot(aggregateID string) *domain.Snapshot {
	snapshot, ok := uc.snapshotRepo.GetLatest(aggregateID)
	if !ok {
		return nil
	}
	return &snapshot
}

// ReplayWithSnapshot starts from a copy of the latest snapshot's state and
// folds only the events after it. Without a snapshot, or when events were
// backfilled at or below the snapshot's sequence since it was taken, it is
// ReplayAll. Both paths give the same result.
func (uc *ReplayUseCase) ReplayWithSnapshot(aggregateID string) (domain.State, error) {
	snapshot, ok := uc.snapshotRepo.GetLatest(aggregateID)
	if !ok {
		return uc.ReplayAll(aggregateID)
	}

	start := time.Now()
	events := uc.eventRepo.GetEvents(aggregateID, 0, nil)

	// Events are in sequence order, so the tail starts at the first event
	// past the snapshot.
	covered := sort.Search(len(events), func(i int) bool {
		return events[i].Sequence > snapshot.LastEventSequence
	})
	if !snapshot.Covers(covered) {
		uc.logger.Debug().
			Str("aggregate_id", aggregateID).
			Str("snapshot_id", snapshot.SnapshotID).
			Int("snapshot_events", snapshot.EventCount).
			Int("stream_events", covered).
			Msg("stale snapshot ignored")
		return uc.ReplayAll(aggregateID)
	}
	tail := events[covered:]

	state := snapshot.State.Clone()
	if state == nil {
		state = domain.State{}
	}

	state, err := uc.fold(state, tail)
	if err != nil {
		return nil, err
	}

	uc.metrics.ReplayObserved(ReplayModeWithSnapshot, len(tail), time.Since(start))
	return state, nil
}

// InvalidateSnapshot drops the aggregate's snapshot. EventUseCase calls it
// when an event is backfilled into the range a snapshot already covers.
func (uc *ReplayUseCase) InvalidateSnapshot(aggregateID string) {
	uc.snapshotRepo.Delete(aggregateID)
	uc.logger.Info().Str("aggregate_id", aggregateID).Msg("snapshot invalidated")
}

// Validate reports whether the folder can fold event. Folders that do not
// implement EventValidator accept every event.
func (uc *ReplayUseCase) Validate(event domain.FinancialEvent) error {
	if v, ok := uc.folder.(EventValidator); ok {
		return v.Validate(event)
	}
	return nil
}

func (uc *ReplayUseCase) fold(state domain.State, events []domain.FinancialEvent) (domain.State, error) {
	for _, evt := range events {
		next, err := uc.folder.Apply(state, evt)
		if err != nil {
			return nil, fmt.Errorf("apply %s (sequence %d): %w", evt.EventID, evt.Sequence, err)
		}
		state = next
	}
	return state, nil
}
