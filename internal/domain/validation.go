package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrMetadataTooLarge = errors.New("metadata size exceeds limit")
)

// Validation constants
const (
	MaxMetadataSize = 10240             // 10KB
	MaxMoneyAmount  = "999999999999.99" // NUMERIC(15,2)
)

var maxMoneyAmount = decimal.RequireFromString(MaxMoneyAmount)

// ValidateAmount validates a transaction or ledger amount against NUMERIC(15,2).
func ValidateAmount(amount decimal.Decimal) error {
	if !HasMoneyPrecision(amount) {
		return fmt.Errorf("%w: %s", ErrInvalidAmountPrecision, amount)
	}

	if amount.Abs().GreaterThan(maxMoneyAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMoneyAmount)
	}

	return nil
}

// ValidateMetadata validates event metadata size
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}

// ValidateBalancedEntries checks that debits equal credits across entries.
func ValidateBalancedEntries(entries []LedgerEntry) error {
	if len(entries) == 0 {
		return ErrEmptyEntries
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i := range entries {
		totalDebits = totalDebits.Add(entries[i].DebitAmount())
		totalCredits = totalCredits.Add(entries[i].CreditAmount())
	}

	if !totalDebits.Equal(totalCredits) {
		return fmt.Errorf(
			"%w: debits=%s credits=%s difference=%s",
			ErrUnbalancedEntries,
			totalDebits.StringFixed(MoneyPlaces),
			totalCredits.StringFixed(MoneyPlaces),
			totalDebits.Sub(totalCredits).Abs().StringFixed(MoneyPlaces),
		)
	}

	return nil
}

// ValidateEntryPair checks a simple debit/credit pair for one transaction.
func ValidateEntryPair(debit, credit LedgerEntry) error {
	switch {
	case !debit.IsDebit:
		return fmt.Errorf("%w: entry %s is not a debit", ErrInvalidEntryPair, debit.ID)
	case credit.IsDebit:
		return fmt.Errorf("%w: entry %s is not a credit", ErrInvalidEntryPair, credit.ID)
	case !debit.Amount.Equal(credit.Amount):
		return fmt.Errorf("%w: amounts differ: debit=%s credit=%s", ErrInvalidEntryPair, debit.Amount, credit.Amount)
	case debit.TransactionID != credit.TransactionID:
		return fmt.Errorf("%w: entries reference different transactions", ErrInvalidEntryPair)
	case debit.TenantID != credit.TenantID:
		return fmt.Errorf("%w: entries belong to different tenants", ErrInvalidEntryPair)
	}
	return nil
}
