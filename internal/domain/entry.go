package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one side of a double-entry posting. Entries are never
// edited or deleted; a correction appends a reversing entry followed by a new
// corrected entry.
type LedgerEntry struct {
	EntryDate       time.Time
	ReversesEntryID *string
	ID              string
	TenantID        string
	PropertyID      string
	TransactionID   string
	FundID          string
	Description     string
	AccountCode     string
	AccountName     string
	Amount          decimal.Decimal
	IsDebit         bool
	IsReversing     bool
}

// DebitAmount returns the amount if this is a debit, zero otherwise.
func (e *LedgerEntry) DebitAmount() decimal.Decimal {
	if e.IsDebit {
		return e.Amount
	}
	return ZeroMoney()
}

// CreditAmount returns the amount if this is a credit, zero otherwise.
func (e *LedgerEntry) CreditAmount() decimal.Decimal {
	if e.IsDebit {
		return ZeroMoney()
	}
	return e.Amount
}

// Validate checks required fields, amount and the reversal reference.
func (e *LedgerEntry) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidLedgerEntry)
	case strings.TrimSpace(e.TenantID) == "":
		return fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, ErrTenantIDRequired)
	case strings.TrimSpace(e.PropertyID) == "":
		return fmt.Errorf("%w: property id is required", ErrInvalidLedgerEntry)
	case strings.TrimSpace(e.TransactionID) == "":
		return fmt.Errorf("%w: transaction id is required", ErrInvalidLedgerEntry)
	case strings.TrimSpace(e.FundID) == "":
		return fmt.Errorf("%w: fund id is required", ErrInvalidLedgerEntry)
	case strings.TrimSpace(e.AccountCode) == "" || strings.TrimSpace(e.AccountName) == "":
		return fmt.Errorf("%w: account code and name are required", ErrInvalidLedgerEntry)
	case e.EntryDate.IsZero():
		return fmt.Errorf("%w: entry date is required", ErrInvalidLedgerEntry)
	case !e.Amount.IsPositive():
		return fmt.Errorf("%w: %w: got %s", ErrInvalidLedgerEntry, ErrInvalidAmount, e.Amount)
	case e.IsReversing && (e.ReversesEntryID == nil || *e.ReversesEntryID == ""):
		return fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, ErrReversalReferenceNeeded)
	case !e.IsReversing && e.ReversesEntryID != nil:
		return fmt.Errorf("%w: only reversing entries may reference another entry", ErrInvalidLedgerEntry)
	}

	if err := ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, err)
	}
	return nil
}

// Reverse builds the entry that cancels e: opposite side, identical amount,
// same fund and account.
func (e *LedgerEntry) Reverse(id string, entryDate time.Time) LedgerEntry {
	original := e.ID
	return LedgerEntry{
		ID:              id,
		TenantID:        e.TenantID,
		PropertyID:      e.PropertyID,
		TransactionID:   e.TransactionID,
		FundID:          e.FundID,
		EntryDate:       entryDate,
		Description:     "Reversal of " + e.ID,
		AccountCode:     e.AccountCode,
		AccountName:     e.AccountName,
		Amount:          e.Amount,
		IsDebit:         !e.IsDebit,
		IsReversing:     true,
		ReversesEntryID: &original,
	}
}

// String renders the entry as "DR 1000 Cash: $100.00".
func (e *LedgerEntry) String() string {
	side := "CR"
	if e.IsDebit {
		side = "DR"
	}
	return fmt.Sprintf("%s %s %s: $%s", side, e.AccountCode, e.AccountName, e.Amount.StringFixed(MoneyPlaces))
}
