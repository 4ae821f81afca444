package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberBalanceSnapshot is a member's balance as of a date, reconstructed
// from the immutable transaction history.
type MemberBalanceSnapshot struct {
	AsOfDate        time.Time
	ReconstructedAt time.Time
	TenantID        string
	MemberID        string
	TotalOwed       decimal.Decimal
	TotalPaid       decimal.Decimal
	CurrentBalance  decimal.Decimal // TotalPaid - TotalOwed; negative means the member owes
	NumTransactions int
}

// FundBalanceSnapshot is a fund's balance as of a date. Funds are
// liability-style accounts: balance = credits - debits.
type FundBalanceSnapshot struct {
	AsOfDate         time.Time
	ReconstructedAt  time.Time
	TenantID         string
	FundID           string
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	CurrentBalance   decimal.Decimal
	NumDebitEntries  int
	NumCreditEntries int
}

// PropertyFinancialSnapshot aggregates fund and member balances for a property.
type PropertyFinancialSnapshot struct {
	AsOfDate               time.Time
	ReconstructedAt        time.Time
	FundBalances           map[string]decimal.Decimal
	MemberBalances         map[string]decimal.Decimal
	TenantID               string
	PropertyID             string
	TotalFundBalance       decimal.Decimal
	TotalMemberReceivables decimal.Decimal // sum of |negative member balances|
	NumActiveMembers       int
	NumFunds               int
}

// BalancePoint is the balance at the end of a date.
type BalancePoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// BalanceHistory shows how a fund balance moved over a date range.
type BalanceHistory struct {
	StartDate       time.Time
	EndDate         time.Time
	TenantID        string
	FundID          string
	BalancePoints   []BalancePoint // ascending by date, one per date with entries
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal
	NetChange       decimal.Decimal
	NumTransactions int
}

// BalanceOn returns the balance point recorded for date, if any.
func (h *BalanceHistory) BalanceOn(date time.Time) (decimal.Decimal, bool) {
	day := DayOf(date)
	for _, p := range h.BalancePoints {
		if p.Date.Equal(day) {
			return p.Balance, true
		}
	}
	return decimal.Zero, false
}

// TransactionSummary totals income and expenses over a date range.
type TransactionSummary struct {
	StartDate         time.Time
	EndDate           time.Time
	TenantID          string
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetIncome         decimal.Decimal
	ExpenseRatio      decimal.Decimal // expenses as a percentage of income, zero when there is no income
	TotalTransactions int
	NumIncome         int
	NumExpenses       int
}

// AgingBucket groups outstanding charges by days past their date.
type AgingBucket string

const (
	AgingCurrent    AgingBucket = "current" // 0-30 days
	AgingDays30     AgingBucket = "30"      // 31-60 days
	AgingDays60     AgingBucket = "60"      // 61-90 days
	AgingDays90Plus AgingBucket = "90+"     // over 90 days
)

// AgingBuckets lists buckets from newest to oldest.
var AgingBuckets = []AgingBucket{AgingCurrent, AgingDays30, AgingDays60, AgingDays90Plus}

// BucketForDays returns the aging bucket for a charge that is days old.
func BucketForDays(days int) AgingBucket {
	switch {
	case days <= 30:
		return AgingCurrent
	case days <= 60:
		return AgingDays30
	case days <= 90:
		return AgingDays60
	default:
		return AgingDays90Plus
	}
}

// MemberAgingSnapshot splits a member's outstanding balance into aging buckets.
type MemberAgingSnapshot struct {
	AsOfDate         time.Time
	ReconstructedAt  time.Time
	Buckets          map[AgingBucket]decimal.Decimal
	TenantID         string
	MemberID         string
	TotalOutstanding decimal.Decimal
}
