package usecase

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/hoaledger/internal/domain"
)

// Rejection reasons reported to metrics.
const (
	RejectReasonInvalid      = "invalid"
	RejectReasonDuplicate    = "duplicate_sequence"
	RejectReasonNonMonotonic = "non_monotonic_sequence"
	RejectReasonUnclassified = "other"
)

// EventUseCase handles appends to the event log and the auto-snapshot policy.
type EventUseCase struct {
	eventRepo         EventRepository
	replay            *ReplayUseCase
	idGen             IDGenerator
	metrics           MetricsRecorder
	logger            zerolog.Logger
	now               func() time.Time
	snapshotEvery     int
	snapshotCreatedBy string

	// recordMu serializes Record so two callers cannot claim the same
	// next sequence for an aggregate.
	recordMu sync.Mutex
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(eventRepo EventRepository, replay *ReplayUseCase, idGen IDGenerator) *EventUseCase {
	return &EventUseCase{
		eventRepo:         eventRepo,
		replay:            replay,
		idGen:             idGen,
		metrics:           nopMetrics{},
		logger:            zerolog.Nop(),
		now:               func() time.Time { return time.Now().UTC() },
		snapshotCreatedBy: DefaultSnapshotCreatedBy,
	}
}

// WithMetrics sets the metrics recorder.
func (uc *EventUseCase) WithMetrics(m MetricsRecorder) *EventUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithLogger sets the logger.
func (uc *EventUseCase) WithLogger(logger zerolog.Logger) *EventUseCase {
	uc.logger = logger
	return uc
}

// WithClock overrides the clock used to timestamp recorded events.
func (uc *EventUseCase) WithClock(now func() time.Time) *EventUseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// WithSnapshotPolicy snapshots an aggregate automatically once every events
// have accumulated since its latest snapshot. Zero disables the policy.
func (uc *EventUseCase) WithSnapshotPolicy(every int, createdBy string) *EventUseCase {
	uc.snapshotEvery = every
	if createdBy != "" {
		uc.snapshotCreatedBy = createdBy
	}
	return uc
}

// Append adds event to the log. Once it returns nil the event is permanent,
// so an event the folder could not fold is rejected up front.
func (uc *EventUseCase) Append(event domain.FinancialEvent) error {
	if uc.replay != nil {
		if err := uc.replay.Validate(event); err != nil {
			uc.reject(event, err)
			return err
		}
	}

	if err := uc.eventRepo.Append(event); err != nil {
		uc.reject(event, err)
		return err
	}

	uc.metrics.EventAppended(event.EventType)
	uc.logger.Debug().
		Str("event_id", event.EventID).
		Str("event_type", string(event.EventType)).
		Str("aggregate_id", event.AggregateID).
		Int64("sequence", event.Sequence).
		Msg("event appended")

	if uc.replay != nil {
		// A backfilled event lands inside the range the snapshot folded.
		if snapshot := uc.replay.GetSnapshot(event.AggregateID); snapshot != nil && event.Sequence <= snapshot.LastEventSequence {
			uc.replay.InvalidateSnapshot(event.AggregateID)
		}
	}

	uc.maybeSnapshot(event)
	return nil
}

func (uc *EventUseCase) reject(event domain.FinancialEvent, err error) {
	uc.metrics.EventRejected(rejectReason(err))
	uc.logger.Warn().
		Err(err).
		Str("event_id", event.EventID).
		Str("aggregate_id", event.AggregateID).
		Int64("sequence", event.Sequence).
		Msg("event rejected")
}

// RecordEventInput represents input for recording a new event.
type RecordEventInput struct {
	Timestamp     *time.Time
	Data          map[string]any
	Metadata      map[string]any
	EventType     domain.EventType
	TenantID      string
	AggregateID   string
	AggregateType string
}

// Record builds an event with a generated id and the aggregate's next
// sequence, then appends it.
func (uc *EventUseCase) Record(input RecordEventInput) (domain.FinancialEvent, error) {
	uc.recordMu.Lock()
	defer uc.recordMu.Unlock()

	timestamp := uc.now()
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	event := domain.NewFinancialEvent(
		uc.idGen.Generate(),
		input.EventType,
		input.TenantID,
		input.AggregateID,
		input.AggregateType,
		uc.eventRepo.LastSequence(input.AggregateID)+1,
		timestamp,
		input.Data,
		input.Metadata,
	)

	if err := uc.Append(event); err != nil {
		return domain.FinancialEvent{}, err
	}

	return event, nil
}

// GetEvents lists an aggregate's events in sequence order.
func (uc *EventUseCase) GetEvents(aggregateID string, fromSequence int64, toSequence *int64) []domain.FinancialEvent {
	return uc.eventRepo.GetEvents(aggregateID, fromSequence, toSequence)
}

// GetAllEvents lists the global stream, filtered and ordered by timestamp.
func (uc *EventUseCase) GetAllEvents(filter EventFilter) []domain.FinancialEvent {
	return uc.eventRepo.GetAllEvents(filter)
}

// GetEventCount counts events for one aggregate, or all when aggregateID is "".
func (uc *EventUseCase) GetEventCount(aggregateID string) int {
	return uc.eventRepo.GetEventCount(aggregateID)
}

func (uc *EventUseCase) maybeSnapshot(event domain.FinancialEvent) {
	if uc.snapshotEvery <= 0 || uc.replay == nil {
		return
	}

	pending := uc.eventRepo.GetEventCount(event.AggregateID)
	if snapshot := uc.replay.GetSnapshot(event.AggregateID); snapshot != nil {
		pending -= snapshot.EventCount
	}
	if pending < uc.snapshotEvery {
		return
	}

	_, err := uc.replay.CreateSnapshot(CreateSnapshotInput{
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		TenantID:      event.TenantID,
		CreatedBy:     uc.snapshotCreatedBy,
		Reason:        domain.SnapshotReasonThreshold,
	})
	if err != nil {
		// The event is already stored; a failed snapshot only costs replay time.
		uc.logger.Warn().Err(err).Str("aggregate_id", event.AggregateID).Msg("auto snapshot failed")
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateSequence):
		return RejectReasonDuplicate
	case errors.Is(err, domain.ErrNonMonotonicSequence):
		return RejectReasonNonMonotonic
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidPayload):
		return RejectReasonInvalid
	default:
		return RejectReasonUnclassified
	}
}
