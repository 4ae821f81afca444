package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentReceivedPayload is the data of a payment_received event. Amounts
// decode from JSON strings or numbers.
type PaymentReceivedPayload struct {
	PaymentID     string          `json:"payment_id"`
	MemberID      string          `json:"member_id"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// Validate requires a positive two-place amount.
func (p PaymentReceivedPayload) Validate() error {
	return validatePayloadAmount("amount", p.Amount, true)
}

// PaymentRefundedPayload is the data of a payment_refunded event.
type PaymentRefundedPayload struct {
	PaymentID string          `json:"payment_id"`
	MemberID  string          `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
}

// Validate requires a positive two-place amount.
func (p PaymentRefundedPayload) Validate() error {
	return validatePayloadAmount("amount", p.Amount, true)
}

// BalanceAdjustedPayload is the data of a balance_adjusted event. Delta may
// be negative.
type BalanceAdjustedPayload struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason,omitempty"`
}

// Validate requires a non-zero two-place delta.
func (p BalanceAdjustedPayload) Validate() error {
	if p.Delta.IsZero() {
		return fmt.Errorf("%w: delta: %w: adjustment cannot be zero", ErrInvalidPayload, ErrInvalidAmount)
	}
	return validatePayloadAmount("delta", p.Delta, false)
}

// TransactionVoidedPayload is the data of a transaction_voided event.
type TransactionVoidedPayload struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason,omitempty"`
}

// MemberDeactivatedPayload is the data of a member_deactivated event.
type MemberDeactivatedPayload struct {
	MemberID string `json:"member_id"`
	Reason   string `json:"reason,omitempty"`
}

// FundClosedPayload is the data of a fund_closed event.
type FundClosedPayload struct {
	FundID       string              `json:"fund_id"`
	FinalBalance decimal.NullDecimal `json:"final_balance"`
}

// Validate checks the final balance when one is given.
func (p FundClosedPayload) Validate() error {
	if !p.FinalBalance.Valid {
		return nil
	}
	return validatePayloadAmount("final_balance", p.FinalBalance.Decimal, false)
}

// LedgerEntryReversedPayload is the data of a ledger_entry_reversed event.
type LedgerEntryReversedPayload struct {
	EntryID          string          `json:"entry_id"`
	ReversingEntryID string          `json:"reversing_entry_id"`
	Amount           decimal.Decimal `json:"amount"`
}

// Validate requires the reversed entry and a positive amount.
func (p LedgerEntryReversedPayload) Validate() error {
	if strings.TrimSpace(p.EntryID) == "" {
		return fmt.Errorf("%w: entry_id is required", ErrInvalidPayload)
	}
	return validatePayloadAmount("amount", p.Amount, true)
}

func validatePayloadAmount(field string, amount decimal.Decimal, positive bool) error {
	if positive && !amount.IsPositive() {
		return fmt.Errorf("%w: %s: %w: got %s", ErrInvalidPayload, field, ErrInvalidAmount, amount)
	}
	if err := ValidateAmount(amount); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, field, err)
	}
	return nil
}

// DecodePayload converts an event's data map into a typed payload and runs
// the payload's Validate method when it has one.
func DecodePayload[T any](evt FinancialEvent) (T, error) {
	var payload T

	raw, err := json.Marshal(evt.Data)
	if err != nil {
		return payload, fmt.Errorf("%w: %s %s: %v", ErrInvalidPayload, evt.EventType, evt.EventID, err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: %s %s: %v", ErrInvalidPayload, evt.EventType, evt.EventID, err)
	}

	if v, ok := any(payload).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%s %s: %w", evt.EventType, evt.EventID, err)
		}
	}

	return payload, nil
}

// EncodePayload converts a typed payload into an event data map.
func EncodePayload(payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return data, nil
}
