package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of monetary transaction kinds.
type TransactionType string

// Income
const (
	TransactionTypeDuesPayment       TransactionType = "dues_payment"
	TransactionTypeAssessmentPayment TransactionType = "assessment_payment"
	TransactionTypeLateFee           TransactionType = "late_fee"
	TransactionTypeTransferFee       TransactionType = "transfer_fee"
	TransactionTypeOtherIncome       TransactionType = "other_income"
)

// Expenses
const (
	TransactionTypeVendorPayment TransactionType = "vendor_payment"
	TransactionTypeUtility       TransactionType = "utility"
	TransactionTypeMaintenance   TransactionType = "maintenance"
	TransactionTypeInsurance     TransactionType = "insurance"
	TransactionTypeManagementFee TransactionType = "management_fee"
	TransactionTypeOtherExpense  TransactionType = "other_expense"
	TransactionTypeBankFee       TransactionType = "bank_fee"
)

// Adjustments
const (
	TransactionTypeRefund       TransactionType = "refund"
	TransactionTypeAdjustment   TransactionType = "adjustment"
	TransactionTypeFundTransfer TransactionType = "fund_transfer"
)

// TransactionClass drives how a transaction is folded into balances and
// summaries. The table below is fixed; a new upstream transaction type must be
// added here or it is silently treated as neutral.
type TransactionClass struct {
	MemberPaid   bool // increases a member's total paid
	MemberOwed   bool // increases a member's total owed
	MemberRefund bool // decreases a member's total paid
	MemberAdjust bool // moves a member's total owed by the signed amount
	Income       bool
	Expense      bool
}

var transactionClasses = map[TransactionType]TransactionClass{
	TransactionTypeDuesPayment:       {MemberPaid: true, Income: true},
	TransactionTypeAssessmentPayment: {MemberPaid: true, Income: true},
	TransactionTypeLateFee:           {MemberOwed: true, Income: true},
	TransactionTypeTransferFee:       {MemberOwed: true, Income: true},
	TransactionTypeOtherIncome:       {MemberOwed: true, Income: true},
	TransactionTypeVendorPayment:     {Expense: true},
	TransactionTypeUtility:           {Expense: true},
	TransactionTypeMaintenance:       {Expense: true},
	TransactionTypeInsurance:         {Expense: true},
	TransactionTypeManagementFee:     {Expense: true},
	TransactionTypeOtherExpense:      {Expense: true},
	TransactionTypeBankFee:           {Expense: true},
	TransactionTypeRefund:            {MemberRefund: true},
	TransactionTypeAdjustment:        {MemberAdjust: true},
	TransactionTypeFundTransfer:      {},
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	_, ok := transactionClasses[t]
	return ok
}

// Class returns the classification of t. Unknown types are neutral.
func (t TransactionType) Class() TransactionClass {
	return transactionClasses[t]
}

// ParseTransactionType validates s as a transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
	return t, nil
}

// Transaction is a monetary fact about a member or property. It is never
// deleted; a correction sets IsVoid and voided transactions are excluded from
// every reconstruction.
type Transaction struct {
	TransactionDate time.Time
	PostedDate      *time.Time
	MemberID        *string
	FundID          *string
	ID              string
	TenantID        string
	PropertyID      string
	Description     string
	TransactionType TransactionType
	Amount          decimal.Decimal
	IsPosted        bool
	IsVoid          bool
}

// BelongsToMember reports whether the transaction is attributed to memberID.
func (t *Transaction) BelongsToMember(memberID string) bool {
	return t.MemberID != nil && *t.MemberID == memberID
}

// Validate checks required fields and amount rules.
func (t *Transaction) Validate() error {
	switch {
	case strings.TrimSpace(t.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidTransaction)
	case strings.TrimSpace(t.TenantID) == "":
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrTenantIDRequired)
	case strings.TrimSpace(t.PropertyID) == "":
		return fmt.Errorf("%w: property id is required", ErrInvalidTransaction)
	case !t.TransactionType.IsValid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidTransaction, ErrUnknownTransactionType, t.TransactionType)
	case t.TransactionDate.IsZero():
		return fmt.Errorf("%w: transaction date is required", ErrInvalidTransaction)
	case t.IsPosted && t.PostedDate == nil:
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrMissingPostedDate)
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	// Adjustments are signed; everything else is a positive amount whose
	// meaning comes from the type.
	if t.TransactionType == TransactionTypeAdjustment {
		if t.Amount.IsZero() {
			return fmt.Errorf("%w: %w: adjustment cannot be zero", ErrInvalidTransaction, ErrInvalidAmount)
		}
		return nil
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: %w: got %s", ErrInvalidTransaction, ErrInvalidAmount, t.Amount)
	}

	return nil
}

// String renders the transaction for log lines.
func (t *Transaction) String() string {
	return fmt.Sprintf("%s: $%s on %s", t.TransactionType, t.Amount.StringFixed(MoneyPlaces), t.TransactionDate.Format(time.DateOnly))
}
