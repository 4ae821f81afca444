package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hoaledger/internal/domain"
)

// ReconstructionUseCase derives balances as of any historical date from
// caller-supplied transactions and ledger entries. It holds no state and never
// modifies the collections it is given.
type ReconstructionUseCase struct {
	metrics MetricsRecorder
	now     func() time.Time
}

// NewReconstructionUseCase creates a new ReconstructionUseCase.
func NewReconstructionUseCase() *ReconstructionUseCase {
	return &ReconstructionUseCase{
		metrics: nopMetrics{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics sets the metrics recorder.
func (uc *ReconstructionUseCase) WithMetrics(m MetricsRecorder) *ReconstructionUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithClock overrides the clock used for ReconstructedAt.
func (uc *ReconstructionUseCase) WithClock(now func() time.Time) *ReconstructionUseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// ReconstructMemberBalance returns the member's balance as of asOf from the
// non-voided transactions dated on or before it.
func (uc *ReconstructionUseCase) ReconstructMemberBalance(
	tenantID, memberID string,
	asOf time.Time,
	transactions []domain.Transaction,
) *domain.MemberBalanceSnapshot {
	uc.metrics.ReconstructionPerformed(ReconstructionMember)

	totals := memberTotals(memberID, asOf, transactions)

	return &domain.MemberBalanceSnapshot{
		TenantID:        tenantID,
		MemberID:        memberID,
		AsOfDate:        domain.DayOf(asOf),
		TotalOwed:       totals.owed,
		TotalPaid:       totals.paid,
		CurrentBalance:  domain.Quantize(totals.paid.Sub(totals.owed)),
		NumTransactions: totals.count,
		ReconstructedAt: uc.now(),
	}
}

type memberTotal struct {
	owed  decimal.Decimal
	paid  decimal.Decimal
	count int
}

// memberTotals folds the member's transactions into paid/owed sums,
// quantizing after every addition.
func memberTotals(memberID string, asOf time.Time, transactions []domain.Transaction) memberTotal {
	total := memberTotal{owed: domain.ZeroMoney(), paid: domain.ZeroMoney()}

	for i := range transactions {
		txn := &transactions[i]
		if txn.IsVoid || !txn.BelongsToMember(memberID) || !domain.OnOrBefore(txn.TransactionDate, asOf) {
			continue
		}
		total.count++

		class := txn.TransactionType.Class()
		switch {
		case class.MemberPaid:
			total.paid = domain.Quantize(total.paid.Add(txn.Amount))
		case class.MemberOwed:
			total.owed = domain.Quantize(total.owed.Add(txn.Amount))
		case class.MemberRefund:
			total.paid = domain.Quantize(total.paid.Sub(txn.Amount))
		case class.MemberAdjust:
			// Positive adjustments raise what is owed, negative ones lower it.
			if txn.Amount.IsPositive() {
				total.owed = domain.Quantize(total.owed.Add(txn.Amount))
			} else {
				total.owed = domain.Quantize(total.owed.Sub(txn.Amount.Abs()))
			}
		}
	}

	return total
}

// ReconstructFundBalance returns the fund's balance as of asOf from the
// entries dated on or before it.
func (uc *ReconstructionUseCase) ReconstructFundBalance(
	tenantID, fundID string,
	asOf time.Time,
	entries []domain.LedgerEntry,
) *domain.FundBalanceSnapshot {
	uc.metrics.ReconstructionPerformed(ReconstructionFund)
	return uc.fundBalance(tenantID, fundID, asOf, entries)
}

func (uc *ReconstructionUseCase) fundBalance(
	tenantID, fundID string,
	asOf time.Time,
	entries []domain.LedgerEntry,
) *domain.FundBalanceSnapshot {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	numDebits, numCredits := 0, 0

	for i := range entries {
		entry := &entries[i]
		if entry.FundID != fundID || !domain.OnOrBefore(entry.EntryDate, asOf) {
			continue
		}
		if entry.IsDebit {
			totalDebits = totalDebits.Add(entry.Amount)
			numDebits++
		} else {
			totalCredits = totalCredits.Add(entry.Amount)
			numCredits++
		}
	}

	return &domain.FundBalanceSnapshot{
		TenantID:         tenantID,
		FundID:           fundID,
		AsOfDate:         domain.DayOf(asOf),
		TotalDebits:      domain.Quantize(totalDebits),
		TotalCredits:     domain.Quantize(totalCredits),
		CurrentBalance:   domain.Quantize(totalCredits.Sub(totalDebits)),
		NumDebitEntries:  numDebits,
		NumCreditEntries: numCredits,
		ReconstructedAt:  uc.now(),
	}
}

// GetTransactionHistory returns the member's non-voided transactions dated
// within [start, end], oldest first. Transactions on the same date keep their
// input order.
func (uc *ReconstructionUseCase) GetTransactionHistory(
	memberID string,
	start, end time.Time,
	transactions []domain.Transaction,
) []domain.Transaction {
	uc.metrics.ReconstructionPerformed(ReconstructionHistory)

	period := domain.DateRange{From: start, To: end}
	history := make([]domain.Transaction, 0)
	for i := range transactions {
		txn := &transactions[i]
		if txn.IsVoid || !txn.BelongsToMember(memberID) || !period.Contains(txn.TransactionDate) {
			continue
		}
		history = append(history, *txn)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return domain.DayOf(history[i].TransactionDate).Before(domain.DayOf(history[j].TransactionDate))
	})

	return history
}

// GetFundBalanceHistory reports the fund's opening balance (as of the day
// before start), closing balance (as of end) and the balance at the end of
// every date in range that has entries.
func (uc *ReconstructionUseCase) GetFundBalanceHistory(
	tenantID, fundID string,
	start, end time.Time,
	entries []domain.LedgerEntry,
) *domain.BalanceHistory {
	uc.metrics.ReconstructionPerformed(ReconstructionFundHistory)

	opening := uc.fundBalance(tenantID, fundID, domain.DayOf(start).AddDate(0, 0, -1), entries).CurrentBalance
	closing := uc.fundBalance(tenantID, fundID, end, entries).CurrentBalance

	// Net movement per date in range, then a single running pass from the
	// opening balance. Sums of two-place decimals are exact, so this matches
	// recomputing each date from scratch.
	period := domain.DateRange{From: start, To: end}
	movements := make(map[time.Time]decimal.Decimal)
	inRange := 0
	for i := range entries {
		entry := &entries[i]
		if entry.FundID != fundID || !period.Contains(entry.EntryDate) {
			continue
		}
		inRange++
		day := domain.DayOf(entry.EntryDate)
		movement := movements[day]
		if entry.IsDebit {
			movements[day] = movement.Sub(entry.Amount)
		} else {
			movements[day] = movement.Add(entry.Amount)
		}
	}

	days := make([]time.Time, 0, len(movements))
	for day := range movements {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	points := make([]domain.BalancePoint, 0, len(days))
	running := opening
	for _, day := range days {
		running = running.Add(movements[day])
		points = append(points, domain.BalancePoint{Date: day, Balance: domain.Quantize(running)})
	}

	return &domain.BalanceHistory{
		TenantID:        tenantID,
		FundID:          fundID,
		StartDate:       domain.DayOf(start),
		EndDate:         domain.DayOf(end),
		BalancePoints:   points,
		OpeningBalance:  opening,
		ClosingBalance:  closing,
		NetChange:       domain.Quantize(closing.Sub(opening)),
		NumTransactions: inRange,
	}
}

// ReconstructPropertySnapshot reconstructs every listed fund and member as of
// asOf and totals them for the property.
func (uc *ReconstructionUseCase) ReconstructPropertySnapshot(
	tenantID, propertyID string,
	asOf time.Time,
	transactions []domain.Transaction,
	entries []domain.LedgerEntry,
	memberIDs, fundIDs []string,
) *domain.PropertyFinancialSnapshot {
	uc.metrics.ReconstructionPerformed(ReconstructionProperty)

	fundBalances := make(map[string]decimal.Decimal, len(fundIDs))
	totalFunds := decimal.Zero
	for _, fundID := range fundIDs {
		balance := uc.fundBalance(tenantID, fundID, asOf, entries).CurrentBalance
		fundBalances[fundID] = balance
		totalFunds = totalFunds.Add(balance)
	}

	memberBalances := make(map[string]decimal.Decimal, len(memberIDs))
	receivables := decimal.Zero
	for _, memberID := range memberIDs {
		totals := memberTotals(memberID, asOf, transactions)
		balance := domain.Quantize(totals.paid.Sub(totals.owed))
		memberBalances[memberID] = balance

		if balance.IsNegative() {
			receivables = receivables.Add(balance.Abs())
		}
	}

	return &domain.PropertyFinancialSnapshot{
		TenantID:               tenantID,
		PropertyID:             propertyID,
		AsOfDate:               domain.DayOf(asOf),
		FundBalances:           fundBalances,
		TotalFundBalance:       domain.Quantize(totalFunds),
		MemberBalances:         memberBalances,
		TotalMemberReceivables: domain.Quantize(receivables),
		NumActiveMembers:       len(memberIDs),
		NumFunds:               len(fundIDs),
		ReconstructedAt:        uc.now(),
	}
}

// GetTransactionSummary totals income and expense transactions dated within
// [start, end]. Voided transactions are excluded; neutral types are counted
// in TotalTransactions only.
func (uc *ReconstructionUseCase) GetTransactionSummary(
	tenantID string,
	start, end time.Time,
	transactions []domain.Transaction,
) *domain.TransactionSummary {
	uc.metrics.ReconstructionPerformed(ReconstructionSummary)

	period := domain.DateRange{From: start, To: end}
	summary := &domain.TransactionSummary{
		TenantID:  tenantID,
		StartDate: domain.DayOf(start),
		EndDate:   domain.DayOf(end),
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for i := range transactions {
		txn := &transactions[i]
		if txn.IsVoid || !period.Contains(txn.TransactionDate) {
			continue
		}
		summary.TotalTransactions++

		class := txn.TransactionType.Class()
		switch {
		case class.Income:
			income = income.Add(txn.Amount)
			summary.NumIncome++
		case class.Expense:
			expenses = expenses.Add(txn.Amount)
			summary.NumExpenses++
		}
	}

	summary.TotalIncome = domain.Quantize(income)
	summary.TotalExpenses = domain.Quantize(expenses)
	summary.NetIncome = domain.Quantize(income.Sub(expenses))
	summary.ExpenseRatio = domain.SafePercent(expenses, income)

	return summary
}
