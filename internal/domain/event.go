package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

// EventType identifies what kind of fact a FinancialEvent records.
type EventType string

// Transaction events
const (
	EventTypeTransactionCreated EventType = "transaction_created"
	EventTypeTransactionPosted  EventType = "transaction_posted"
	EventTypeTransactionVoided  EventType = "transaction_voided"
	EventTypeTransactionUpdated EventType = "transaction_updated"
)

// Ledger entry events
const (
	EventTypeLedgerEntryCreated  EventType = "ledger_entry_created"
	EventTypeLedgerEntryReversed EventType = "ledger_entry_reversed"
)

// Member, property and fund lifecycle events
const (
	EventTypeMemberCreated     EventType = "member_created"
	EventTypeMemberUpdated     EventType = "member_updated"
	EventTypeMemberDeactivated EventType = "member_deactivated"
	EventTypePropertyCreated   EventType = "property_created"
	EventTypePropertyUpdated   EventType = "property_updated"
	EventTypeFundCreated       EventType = "fund_created"
	EventTypeFundUpdated       EventType = "fund_updated"
	EventTypeFundClosed        EventType = "fund_closed"
)

// Payment and balance events
const (
	EventTypePaymentReceived   EventType = "payment_received"
	EventTypePaymentRefunded   EventType = "payment_refunded"
	EventTypePaymentFailed     EventType = "payment_failed"
	EventTypeBalanceCalculated EventType = "balance_calculated"
	EventTypeBalanceAdjusted   EventType = "balance_adjusted"
)

// System events
const (
	EventTypeSnapshotCreated EventType = "snapshot_created"
	EventTypeDataMigration   EventType = "data_migration"
)

var eventCategories = map[EventType]string{
	EventTypeTransactionCreated:  "transaction",
	EventTypeTransactionPosted:   "transaction",
	EventTypeTransactionVoided:   "transaction",
	EventTypeTransactionUpdated:  "transaction",
	EventTypeLedgerEntryCreated:  "ledger",
	EventTypeLedgerEntryReversed: "ledger",
	EventTypeMemberCreated:       "member",
	EventTypeMemberUpdated:       "member",
	EventTypeMemberDeactivated:   "member",
	EventTypePropertyCreated:     "property",
	EventTypePropertyUpdated:     "property",
	EventTypeFundCreated:         "fund",
	EventTypeFundUpdated:         "fund",
	EventTypeFundClosed:          "fund",
	EventTypePaymentReceived:     "payment",
	EventTypePaymentRefunded:     "payment",
	EventTypePaymentFailed:       "payment",
	EventTypeBalanceCalculated:   "balance",
	EventTypeBalanceAdjusted:     "balance",
	EventTypeSnapshotCreated:     "system",
	EventTypeDataMigration:       "system",
}

// IsValid reports whether t is one of the known event types.
func (t EventType) IsValid() bool {
	_, ok := eventCategories[t]
	return ok
}

// Category returns the lifecycle family of the event type, or "" if unknown.
func (t EventType) Category() string {
	return eventCategories[t]
}

// ParseEventType validates s as an event type.
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
	return t, nil
}

// Aggregate types used by the built-in producers. AggregateType is free-form;
// these are conventions, not a closed set.
const (
	AggregateTypeMember      = "member"
	AggregateTypeFund        = "fund"
	AggregateTypeProperty    = "property"
	AggregateTypeTransaction = "transaction"
	AggregateTypeLedgerEntry = "ledger_entry"
)

// CurrentEventVersion is the schema version stamped on new events.
const CurrentEventVersion = 1

// FinancialEvent is an immutable fact about an aggregate. Once appended to the
// log it is never modified or removed.
type FinancialEvent struct {
	Timestamp     time.Time
	Data          map[string]any
	Metadata      map[string]any
	EventID       string
	EventType     EventType
	TenantID      string
	AggregateID   string
	AggregateType string
	Version       int
	Sequence      int64
}

// NewFinancialEvent builds an event with the given identity, timestamp and the
// current schema version.
func NewFinancialEvent(
	eventID string,
	eventType EventType,
	tenantID, aggregateID, aggregateType string,
	sequence int64,
	timestamp time.Time,
	data, metadata map[string]any,
) FinancialEvent {
	if data == nil {
		data = map[string]any{}
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return FinancialEvent{
		EventID:       eventID,
		EventType:     eventType,
		TenantID:      tenantID,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Timestamp:     timestamp,
		Data:          data,
		Metadata:      metadata,
		Version:       CurrentEventVersion,
		Sequence:      sequence,
	}
}

// Validate checks that every required field is populated.
func (e FinancialEvent) Validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return fmt.Errorf("%w: event id is required", ErrInvalidEvent)
	case !e.EventType.IsValid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidEvent, ErrUnknownEventType, e.EventType)
	case strings.TrimSpace(e.TenantID) == "":
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrTenantIDRequired)
	case strings.TrimSpace(e.AggregateID) == "":
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrAggregateIDRequired)
	case strings.TrimSpace(e.AggregateType) == "":
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrAggregateTypeRequired)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	case e.Data == nil:
		return fmt.Errorf("%w: data is required", ErrInvalidEvent)
	case e.Version < 1:
		return fmt.Errorf("%w: version must be at least 1, got %d", ErrInvalidEvent, e.Version)
	case e.Sequence < 1:
		return fmt.Errorf("%w: sequence must be at least 1, got %d", ErrInvalidEvent, e.Sequence)
	}

	if err := ValidateMetadata(e.Metadata); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return nil
}

// Detach returns a copy whose payload maps are not shared with the caller.
func (e FinancialEvent) Detach() FinancialEvent {
	e.Data = State(e.Data).Clone()
	e.Metadata = State(e.Metadata).Clone()
	return e
}

// State is the folded result of replaying an aggregate's events.
type State map[string]any

// Clone deep-copies nested maps and slices so the copy can be changed freely.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return map[string]any(State(typed).Clone())
	case State:
		return typed.Clone()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	case map[string]string:
		return maps.Clone(typed)
	default:
		return v
	}
}
