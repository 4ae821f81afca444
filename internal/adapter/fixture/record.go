// Package fixture reads events, transactions and ledger entries from JSON
// files and renders read models as JSON.
package fixture

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hoaledger/internal/domain"
)

// EventRecord is a FinancialEvent as stored in a fixture file.
type EventRecord struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	TenantID      string         `json:"tenant_id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	Timestamp     time.Time      `json:"timestamp"`
	Data          map[string]any `json:"data"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Version       int            `json:"version,omitempty"`
	Sequence      int64          `json:"sequence"`
}

// ToDomain converts the record to a validated event. A missing version
// defaults to the current schema version.
func (r *EventRecord) ToDomain() (domain.FinancialEvent, error) {
	eventType, err := domain.ParseEventType(r.EventType)
	if err != nil {
		return domain.FinancialEvent{}, fmt.Errorf("event %s: %w", r.EventID, err)
	}

	evt := domain.NewFinancialEvent(
		r.EventID,
		eventType,
		r.TenantID,
		r.AggregateID,
		r.AggregateType,
		r.Sequence,
		r.Timestamp,
		r.Data,
		r.Metadata,
	)
	if r.Version != 0 {
		evt.Version = r.Version
	}

	if err := evt.Validate(); err != nil {
		return domain.FinancialEvent{}, fmt.Errorf("event %s: %w", r.EventID, err)
	}
	return evt, nil
}

// TransactionRecord is a Transaction as stored in a fixture file. Dates use
// the YYYY-MM-DD layout.
type TransactionRecord struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	PropertyID      string          `json:"property_id"`
	MemberID        *string         `json:"member_id,omitempty"`
	FundID          *string         `json:"fund_id,omitempty"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	PostedDate      *string         `json:"posted_date,omitempty"`
	Description     string          `json:"description"`
	IsPosted        bool            `json:"is_posted"`
	IsVoid          bool            `json:"is_void"`
}

// ToDomain converts the record to a validated transaction.
func (r *TransactionRecord) ToDomain() (domain.Transaction, error) {
	txType, err := domain.ParseTransactionType(r.TransactionType)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}

	date, err := ParseDate(r.TransactionDate)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}

	var posted *time.Time
	if r.PostedDate != nil {
		d, err := ParseDate(*r.PostedDate)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
		}
		posted = &d
	}

	txn := domain.Transaction{
		ID:              r.ID,
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		MemberID:        r.MemberID,
		FundID:          r.FundID,
		TransactionType: txType,
		Amount:          r.Amount,
		TransactionDate: date,
		PostedDate:      posted,
		Description:     r.Description,
		IsPosted:        r.IsPosted,
		IsVoid:          r.IsVoid,
	}

	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return txn, nil
}

// LedgerEntryRecord is a LedgerEntry as stored in a fixture file.
type LedgerEntryRecord struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	PropertyID      string          `json:"property_id"`
	TransactionID   string          `json:"transaction_id"`
	FundID          string          `json:"fund_id"`
	EntryDate       string          `json:"entry_date"`
	Description     string          `json:"description"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	Amount          decimal.Decimal `json:"amount"`
	IsDebit         bool            `json:"is_debit"`
	IsReversing     bool            `json:"is_reversing"`
	ReversesEntryID *string         `json:"reverses_entry_id,omitempty"`
}

// ToDomain converts the record to a validated ledger entry.
func (r *LedgerEntryRecord) ToDomain() (domain.LedgerEntry, error) {
	date, err := ParseDate(r.EntryDate)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger entry %s: %w", r.ID, err)
	}

	entry := domain.LedgerEntry{
		ID:              r.ID,
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		TransactionID:   r.TransactionID,
		FundID:          r.FundID,
		EntryDate:       date,
		Description:     r.Description,
		AccountCode:     r.AccountCode,
		AccountName:     r.AccountName,
		Amount:          r.Amount,
		IsDebit:         r.IsDebit,
		IsReversing:     r.IsReversing,
		ReversesEntryID: r.ReversesEntryID,
	}

	if err := entry.Validate(); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("ledger entry %s: %w", r.ID, err)
	}
	return entry, nil
}

// ParseDate parses a YYYY-MM-DD accounting date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
