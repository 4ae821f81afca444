package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
	"github.com/iho/hoaledger/internal/usecase/mocks"
)

func jan(day int) time.Time { return domain.Date(2024, time.January, day) }

func money(s string) decimal.Decimal { return domain.MustMoney(s) }

func newReconstruction() (*usecase.ReconstructionUseCase, *mocks.RecordingMetrics) {
	metrics := mocks.NewRecordingMetrics()
	return usecase.NewReconstructionUseCase().WithMetrics(metrics).WithClock(fixedClock(day0)), metrics
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, money(want).Equal(got), append([]any{"want %s, got %s", want, got.StringFixed(2)}, msgAndArgs...)...)
}

func TestReconstructMemberBalance_DuesThenLateFee(t *testing.T) {
	uc, metrics := newReconstruction()

	txns := []domain.Transaction{
		txn("t1", domain.TransactionTypeDuesPayment, "100.00", jan(1)),
		txn("t2", domain.TransactionTypeDuesPayment, "100.00", jan(2)),
		txn("t3", domain.TransactionTypeLateFee, "25.00", jan(3)),
	}

	day2 := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(2), txns)
	assertMoney(t, "200.00", day2.TotalPaid)
	assertMoney(t, "0.00", day2.TotalOwed)
	assertMoney(t, "200.00", day2.CurrentBalance)
	assert.Equal(t, 2, day2.NumTransactions)

	day3 := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(3), txns)
	assertMoney(t, "25.00", day3.TotalOwed)
	assertMoney(t, "175.00", day3.CurrentBalance)
	assert.Equal(t, 3, day3.NumTransactions)
	assert.Equal(t, jan(3), day3.AsOfDate)
	assert.Equal(t, day0, day3.ReconstructedAt)

	assert.Equal(t, 2, metrics.Reconstructions[usecase.ReconstructionMember])
}

func TestReconstructMemberBalance_Classification(t *testing.T) {
	uc, _ := newReconstruction()

	other := txn("t-other", domain.TransactionTypeDuesPayment, "500.00", jan(1))
	other.MemberID = strPtr("member-2")
	voided := txn("t-void", domain.TransactionTypeDuesPayment, "999.00", jan(1))
	voided.IsVoid = true

	txns := []domain.Transaction{
		txn("t1", domain.TransactionTypeAssessmentPayment, "300.00", jan(1)),
		txn("t2", domain.TransactionTypeRefund, "50.00", jan(2)),
		txn("t3", domain.TransactionTypeTransferFee, "40.00", jan(2)),
		txn("t4", domain.TransactionTypeAdjustment, "10.00", jan(3)),
		txn("t5", domain.TransactionTypeAdjustment, "-15.00", jan(3)),
		txn("t6", domain.TransactionTypeVendorPayment, "70.00", jan(3)),
		other,
		voided,
	}

	snap := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(31), txns)

	assertMoney(t, "250.00", snap.TotalPaid)
	assertMoney(t, "35.00", snap.TotalOwed)
	assertMoney(t, "215.00", snap.CurrentBalance)
	assert.Equal(t, 6, snap.NumTransactions)
}

func TestReconstructMemberBalance_ZeroInput(t *testing.T) {
	uc, _ := newReconstruction()

	snap := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(31), nil)

	assert.True(t, snap.TotalPaid.IsZero())
	assert.True(t, snap.TotalOwed.IsZero())
	assert.True(t, snap.CurrentBalance.IsZero())
	assert.Equal(t, 0, snap.NumTransactions)

	fund := uc.ReconstructFundBalance("hoa-1", "operating", jan(31), nil)
	assert.True(t, fund.CurrentBalance.IsZero())
	assert.True(t, fund.TotalDebits.IsZero())
	assert.True(t, fund.TotalCredits.IsZero())
}

func TestReconstructMemberBalance_Idempotent(t *testing.T) {
	uc, _ := newReconstruction()

	txns := []domain.Transaction{
		txn("t1", domain.TransactionTypeDuesPayment, "33.33", jan(1)),
		txn("t2", domain.TransactionTypeLateFee, "0.01", jan(2)),
		txn("t3", domain.TransactionTypeAdjustment, "-0.05", jan(3)),
	}
	original := append([]domain.Transaction(nil), txns...)

	first := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(31), txns)
	second := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(31), txns)

	assert.Equal(t, first.CurrentBalance.String(), second.CurrentBalance.String())
	assert.Equal(t, first, second)
	assert.Equal(t, original, txns, "input must not be modified")
}

func TestReconstructMemberBalance_PointInTimeDifference(t *testing.T) {
	uc, _ := newReconstruction()

	txns := []domain.Transaction{
		txn("t1", domain.TransactionTypeDuesPayment, "100.00", jan(1)),
		txn("t2", domain.TransactionTypeLateFee, "12.50", jan(5)),
		txn("t3", domain.TransactionTypeRefund, "20.00", jan(8)),
		txn("t4", domain.TransactionTypeAdjustment, "-7.25", jan(10)),
		txn("t5", domain.TransactionTypeDuesPayment, "45.10", jan(15)),
	}

	for d1 := 1; d1 <= 15; d1++ {
		for d2 := d1 + 1; d2 <= 16; d2++ {
			before := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(d1), txns)
			after := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(d2), txns)

			var between []domain.Transaction
			for _, tx := range txns {
				if tx.TransactionDate.After(jan(d1)) && !tx.TransactionDate.After(jan(d2)) {
					between = append(between, tx)
				}
			}
			net := uc.ReconstructMemberBalance("hoa-1", "member-1", jan(d2), between).CurrentBalance

			require.True(t, after.CurrentBalance.Sub(before.CurrentBalance).Equal(net),
				"d1=%d d2=%d: %s - %s != %s", d1, d2, after.CurrentBalance, before.CurrentBalance, net)
		}
	}
}

func TestReconstructFundBalance(t *testing.T) {
	uc, _ := newReconstruction()

	entries := []domain.LedgerEntry{
		entry("1", "operating", "500.00", false, jan(1)),
		entry("2", "operating", "120.00", true, jan(3)),
		entry("3", "operating", "30.00", true, jan(5)),
		entry("4", "reserve", "1000.00", false, jan(2)),
		entry("5", "operating", "75.00", false, jan(20)),
	}

	snap := uc.ReconstructFundBalance("hoa-1", "operating", jan(10), entries)

	assertMoney(t, "150.00", snap.TotalDebits)
	assertMoney(t, "500.00", snap.TotalCredits)
	assertMoney(t, "350.00", snap.CurrentBalance)
	assert.Equal(t, 2, snap.NumDebitEntries)
	assert.Equal(t, 1, snap.NumCreditEntries)
}

func TestReconstructFundBalance_BalancedPostingsCloseToZero(t *testing.T) {
	uc, _ := newReconstruction()

	// Each posting debits and credits the same fund.
	var entries []domain.LedgerEntry
	amounts := []string{"100.00", "0.01", "2500.55", "19.99"}
	for i, amount := range amounts {
		entries = append(entries,
			entry("d"+amount, "operating", amount, true, jan(i+1)),
			entry("c"+amount, "operating", amount, false, jan(i+1)),
		)
	}

	snap := uc.ReconstructFundBalance("hoa-1", "operating", jan(31), entries)

	assert.True(t, snap.TotalDebits.Equal(snap.TotalCredits))
	assert.True(t, snap.CurrentBalance.Equal(snap.TotalCredits.Sub(snap.TotalDebits)))
	assert.True(t, snap.CurrentBalance.IsZero())
	require.NoError(t, domain.ValidateBalancedEntries(entries))
}

func TestReconstructFundBalance_ReversalNetsToZero(t *testing.T) {
	uc, _ := newReconstruction()

	original := entry("1", "operating", "250.00", false, jan(3))
	reversal := original.Reverse("1-rev", jan(4))
	corrected := entry("2", "operating", "205.00", false, jan(4))

	entries := []domain.LedgerEntry{original, reversal, corrected}

	assertMoney(t, "250.00", uc.ReconstructFundBalance("hoa-1", "operating", jan(3), entries).CurrentBalance)
	assertMoney(t, "205.00", uc.ReconstructFundBalance("hoa-1", "operating", jan(4), entries).CurrentBalance)
}

func TestGetTransactionHistory(t *testing.T) {
	uc, _ := newReconstruction()

	voided := txn("void", domain.TransactionTypeDuesPayment, "1.00", jan(5))
	voided.IsVoid = true
	other := txn("other", domain.TransactionTypeDuesPayment, "1.00", jan(5))
	other.MemberID = strPtr("member-2")

	txns := []domain.Transaction{
		txn("late", domain.TransactionTypeDuesPayment, "1.00", jan(20)),
		txn("end", domain.TransactionTypeLateFee, "1.00", time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC)),
		txn("start-a", domain.TransactionTypeDuesPayment, "1.00", jan(5)),
		txn("mid", domain.TransactionTypeDuesPayment, "1.00", jan(9)),
		txn("start-b", domain.TransactionTypeRefund, "1.00", jan(5)),
		txn("early", domain.TransactionTypeDuesPayment, "1.00", jan(4)),
		voided,
		other,
	}

	history := uc.GetTransactionHistory("member-1", jan(5), jan(15), txns)

	ids := make([]string, 0, len(history))
	for _, tx := range history {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"start-a", "start-b", "mid", "end"}, ids)

	assert.Empty(t, uc.GetTransactionHistory("member-1", jan(5), jan(15), nil))
}

func TestGetFundBalanceHistory(t *testing.T) {
	uc, _ := newReconstruction()

	entries := []domain.LedgerEntry{
		entry("1", "operating", "1000.00", false, domain.Date(2023, time.December, 31)),
		entry("2", "operating", "200.00", true, jan(3)),
		entry("3", "operating", "50.00", false, jan(3)),
		entry("4", "operating", "80.10", true, jan(7)),
		entry("5", "reserve", "999.00", false, jan(7)),
		entry("6", "operating", "10.00", false, jan(12)),
		entry("7", "operating", "300.00", true, jan(20)),
	}

	history := uc.GetFundBalanceHistory("hoa-1", "operating", jan(1), jan(15), entries)

	assertMoney(t, "1000.00", history.OpeningBalance)
	assertMoney(t, "779.90", history.ClosingBalance)
	assertMoney(t, "-220.10", history.NetChange)
	assert.Equal(t, 4, history.NumTransactions)

	require.Len(t, history.BalancePoints, 3)
	wantPoints := map[time.Time]string{jan(3): "850.00", jan(7): "769.90", jan(12): "779.90"}
	for i, point := range history.BalancePoints {
		assertMoney(t, wantPoints[point.Date], point.Balance, "point %s", point.Date)
		if i > 0 {
			assert.True(t, history.BalancePoints[i-1].Date.Before(point.Date))
		}

		// The running balance matches a from-scratch reconstruction.
		direct := uc.ReconstructFundBalance("hoa-1", "operating", point.Date, entries).CurrentBalance
		assert.Equal(t, direct.String(), point.Balance.String())
	}

	last := history.BalancePoints[len(history.BalancePoints)-1]
	assert.True(t, last.Balance.Equal(history.ClosingBalance))
}

func TestGetFundBalanceHistory_NoEntriesInRange(t *testing.T) {
	uc, _ := newReconstruction()

	entries := []domain.LedgerEntry{entry("1", "operating", "40.00", false, jan(1))}

	history := uc.GetFundBalanceHistory("hoa-1", "operating", jan(10), jan(20), entries)

	assert.Empty(t, history.BalancePoints)
	assertMoney(t, "40.00", history.OpeningBalance)
	assertMoney(t, "40.00", history.ClosingBalance)
	assert.True(t, history.NetChange.IsZero())
	assert.Equal(t, 0, history.NumTransactions)
}

func TestReconstructPropertySnapshot(t *testing.T) {
	uc, _ := newReconstruction()

	owes := txn("t2", domain.TransactionTypeLateFee, "75.00", jan(2))
	owes.MemberID = strPtr("member-2")
	owesMore := txn("t3", domain.TransactionTypeAdjustment, "25.50", jan(2))
	owesMore.MemberID = strPtr("member-3")

	txns := []domain.Transaction{
		txn("t1", domain.TransactionTypeDuesPayment, "100.00", jan(1)),
		owes,
		owesMore,
	}
	entries := []domain.LedgerEntry{
		entry("1", "operating", "100.00", false, jan(1)),
		entry("2", "reserve", "40.00", false, jan(1)),
		entry("3", "reserve", "15.00", true, jan(2)),
	}

	snap := uc.ReconstructPropertySnapshot("hoa-1", "prop-1", jan(31), txns, entries,
		[]string{"member-1", "member-2", "member-3"}, []string{"operating", "reserve"})

	assertMoney(t, "100.00", snap.FundBalances["operating"])
	assertMoney(t, "25.00", snap.FundBalances["reserve"])
	assertMoney(t, "125.00", snap.TotalFundBalance)
	assertMoney(t, "100.00", snap.MemberBalances["member-1"])
	assertMoney(t, "-75.00", snap.MemberBalances["member-2"])
	assertMoney(t, "-25.50", snap.MemberBalances["member-3"])
	assertMoney(t, "100.50", snap.TotalMemberReceivables)
	assert.Equal(t, 3, snap.NumActiveMembers)
	assert.Equal(t, 2, snap.NumFunds)
}

func TestReconstructPropertySnapshot_Empty(t *testing.T) {
	uc, _ := newReconstruction()

	snap := uc.ReconstructPropertySnapshot("hoa-1", "prop-1", jan(31), nil, nil, nil, nil)

	assert.Empty(t, snap.FundBalances)
	assert.Empty(t, snap.MemberBalances)
	assert.True(t, snap.TotalFundBalance.IsZero())
	assert.True(t, snap.TotalMemberReceivables.IsZero())
}

func TestGetTransactionSummary(t *testing.T) {
	uc, _ := newReconstruction()

	voided := txn("void", domain.TransactionTypeUtility, "5000.00", jan(10))
	voided.IsVoid = true

	txns := []domain.Transaction{
		txn("i1", domain.TransactionTypeDuesPayment, "1000.00", jan(1)),
		txn("i2", domain.TransactionTypeLateFee, "50.00", jan(15)),
		txn("e1", domain.TransactionTypeMaintenance, "300.00", jan(10)),
		txn("e2", domain.TransactionTypeInsurance, "120.00", jan(31)),
		txn("n1", domain.TransactionTypeFundTransfer, "400.00", jan(12)),
		txn("n2", domain.TransactionTypeRefund, "10.00", jan(12)),
		txn("out", domain.TransactionTypeDuesPayment, "1000.00", domain.Date(2024, time.February, 1)),
		voided,
	}

	summary := uc.GetTransactionSummary("hoa-1", jan(1), jan(31), txns)

	assertMoney(t, "1050.00", summary.TotalIncome)
	assertMoney(t, "420.00", summary.TotalExpenses)
	assertMoney(t, "630.00", summary.NetIncome)
	assertMoney(t, "40.00", summary.ExpenseRatio)
	assert.Equal(t, 2, summary.NumIncome)
	assert.Equal(t, 2, summary.NumExpenses)
	assert.Equal(t, 6, summary.TotalTransactions)
}

func TestGetTransactionSummary_NoIncome(t *testing.T) {
	uc, _ := newReconstruction()

	txns := []domain.Transaction{txn("e1", domain.TransactionTypeBankFee, "15.00", jan(3))}

	summary := uc.GetTransactionSummary("hoa-1", jan(1), jan(31), txns)

	assertMoney(t, "-15.00", summary.NetIncome)
	assert.True(t, summary.ExpenseRatio.IsZero())

	empty := uc.GetTransactionSummary("hoa-1", jan(1), jan(31), nil)
	assert.True(t, empty.TotalIncome.IsZero())
	assert.True(t, empty.ExpenseRatio.IsZero())
	assert.Equal(t, 0, empty.TotalTransactions)
}
