package domain

import "errors"

var (
	// Event errors
	ErrInvalidEvent          = errors.New("invalid financial event")
	ErrUnknownEventType      = errors.New("unknown event type")
	ErrDuplicateSequence     = errors.New("sequence already exists in aggregate stream")
	ErrNonMonotonicSequence  = errors.New("sequence must strictly increase within aggregate stream")
	ErrInvalidPayload        = errors.New("invalid event payload")
	ErrAggregateIDRequired   = errors.New("aggregate id is required")
	ErrAggregateTypeRequired = errors.New("aggregate type is required")
	ErrTenantIDRequired      = errors.New("tenant id is required")

	// Transaction errors
	ErrInvalidTransaction      = errors.New("invalid transaction")
	ErrUnknownTransactionType  = errors.New("unknown transaction type")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidAmountPrecision  = errors.New("amount must have at most 2 decimal places")
	ErrMissingPostedDate       = errors.New("posted transaction has no posted date")
	ErrInvalidLedgerEntry      = errors.New("invalid ledger entry")
	ErrReversalReferenceNeeded = errors.New("reversing entry must reference the entry it reverses")

	// Double-entry errors
	ErrEmptyEntries      = errors.New("cannot validate empty entry list")
	ErrUnbalancedEntries = errors.New("entries are not balanced")
	ErrInvalidEntryPair  = errors.New("invalid debit/credit entry pair")

	// Range errors
	ErrInvalidDateRange = errors.New("start date is after end date")
)
