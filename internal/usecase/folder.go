package usecase

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hoaledger/internal/domain"
)

// Keys stamped on every folded state.
const (
	StateKeyLastEventID   = "last_event_id"
	StateKeyLastEventType = "last_event_type"
	StateKeyLastUpdated   = "last_updated"
)

// Keys maintained by the typed folder.
const (
	StateKeyBalance         = "balance"
	StateKeyStatus          = "status"
	StateKeyIsVoid          = "is_void"
	StateKeyReversedEntries = "reversed_entries"
)

// Status values maintained by the typed folder.
const (
	StatusInactive = "inactive"
	StatusClosed   = "closed"
)

// MergeFolder is the default fold: shallow-merge a copy of the event data
// into the state, then stamp the last event's identity. Nested values are
// copied so the folded state never shares maps with stored events.
type MergeFolder struct{}

// Apply implements Folder.
func (MergeFolder) Apply(state domain.State, event domain.FinancialEvent) (domain.State, error) {
	next := make(domain.State, len(state)+len(event.Data)+3)
	maps.Copy(next, state)
	maps.Copy(next, domain.State(event.Data).Clone())

	next[StateKeyLastEventID] = event.EventID
	next[StateKeyLastEventType] = string(event.EventType)
	next[StateKeyLastUpdated] = event.Timestamp.Format(time.RFC3339Nano)

	return next, nil
}

// ApplyFunc folds a single event type. It receives the merged state and must
// return a new state without touching the one it was given.
type ApplyFunc func(merged domain.State, event domain.FinancialEvent) (domain.State, error)

// TypedFolder dispatches on event type to typed payload handlers. Event types
// without a handler fold through the merge folder only.
type TypedFolder struct {
	handlers map[domain.EventType]ApplyFunc
	merge    MergeFolder
}

var _ EventValidator = (*TypedFolder)(nil)

// NewTypedFolder returns a folder with the built-in payment, balance and
// lifecycle handlers registered.
func NewTypedFolder() *TypedFolder {
	f := &TypedFolder{handlers: make(map[domain.EventType]ApplyFunc)}

	f.Register(domain.EventTypePaymentReceived, applyPaymentReceived)
	f.Register(domain.EventTypePaymentRefunded, applyPaymentRefunded)
	f.Register(domain.EventTypeBalanceAdjusted, applyBalanceAdjusted)
	f.Register(domain.EventTypeTransactionVoided, applyTransactionVoided)
	f.Register(domain.EventTypeMemberDeactivated, applyMemberDeactivated)
	f.Register(domain.EventTypeFundClosed, applyFundClosed)
	f.Register(domain.EventTypeLedgerEntryReversed, applyLedgerEntryReversed)

	return f
}

// Register installs fn for eventType, replacing any previous handler.
func (f *TypedFolder) Register(eventType domain.EventType, fn ApplyFunc) *TypedFolder {
	f.handlers[eventType] = fn
	return f
}

// Validate implements EventValidator. The event must fold onto an empty
// state, and a balance it carries in its data must read as money, since later
// typed events add to it.
func (f *TypedFolder) Validate(event domain.FinancialEvent) error {
	state, err := f.Apply(domain.State{}, event)
	if err != nil {
		return err
	}
	if _, err := stateMoney(state, StateKeyBalance); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrInvalidPayload, event.EventType, event.EventID, err)
	}
	return nil
}

// Apply implements Folder.
func (f *TypedFolder) Apply(state domain.State, event domain.FinancialEvent) (domain.State, error) {
	merged, err := f.merge.Apply(state, event)
	if err != nil {
		return nil, err
	}

	fn, ok := f.handlers[event.EventType]
	if !ok {
		return merged, nil
	}

	return fn(merged, event)
}

func applyPaymentReceived(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	payload, err := domain.DecodePayload[domain.PaymentReceivedPayload](event)
	if err != nil {
		return nil, err
	}
	return moveBalance(merged, event, payload.Amount, false)
}

func applyPaymentRefunded(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	payload, err := domain.DecodePayload[domain.PaymentRefundedPayload](event)
	if err != nil {
		return nil, err
	}
	return moveBalance(merged, event, payload.Amount, true)
}

func applyBalanceAdjusted(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	payload, err := domain.DecodePayload[domain.BalanceAdjustedPayload](event)
	if err != nil {
		return nil, err
	}
	return moveBalance(merged, event, payload.Delta, false)
}

func applyTransactionVoided(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	if _, err := domain.DecodePayload[domain.TransactionVoidedPayload](event); err != nil {
		return nil, err
	}
	merged[StateKeyIsVoid] = true
	return merged, nil
}

func applyMemberDeactivated(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	if _, err := domain.DecodePayload[domain.MemberDeactivatedPayload](event); err != nil {
		return nil, err
	}
	merged[StateKeyStatus] = StatusInactive
	return merged, nil
}

func applyFundClosed(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	if _, err := domain.DecodePayload[domain.FundClosedPayload](event); err != nil {
		return nil, err
	}
	merged[StateKeyStatus] = StatusClosed
	return merged, nil
}

func applyLedgerEntryReversed(merged domain.State, event domain.FinancialEvent) (domain.State, error) {
	payload, err := domain.DecodePayload[domain.LedgerEntryReversedPayload](event)
	if err != nil {
		return nil, err
	}

	var reversed []any
	if existing, ok := merged[StateKeyReversedEntries].([]any); ok {
		reversed = make([]any, 0, len(existing)+1)
		reversed = append(reversed, existing...)
	}
	merged[StateKeyReversedEntries] = append(reversed, payload.EntryID)

	return merged, nil
}

// moveBalance adds (or subtracts) amount to the running balance kept in the
// state as a fixed two-place decimal string.
func moveBalance(merged domain.State, event domain.FinancialEvent, amount decimal.Decimal, subtract bool) (domain.State, error) {
	balance, err := stateMoney(merged, StateKeyBalance)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrInvalidPayload, event.EventType, event.EventID, err)
	}

	if subtract {
		balance = balance.Sub(amount)
	} else {
		balance = balance.Add(amount)
	}
	merged[StateKeyBalance] = domain.Quantize(balance).StringFixed(domain.MoneyPlaces)

	return merged, nil
}

func stateMoney(state domain.State, key string) (decimal.Decimal, error) {
	switch v := state[key].(type) {
	case nil:
		return domain.ZeroMoney(), nil
	case string:
		return domain.ParseMoney(v)
	case json.Number:
		return domain.ParseMoney(v.String())
	case float64:
		return domain.Quantize(decimal.NewFromFloat(v)), nil
	case decimal.Decimal:
		return domain.Quantize(v), nil
	default:
		return decimal.Zero, fmt.Errorf("state key %q holds %T, not an amount", key, v)
	}
}
