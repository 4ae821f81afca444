package usecase_test

import (
	"time"

	"github.com/iho/hoaledger/internal/domain"
)

var day0 = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func memberEvent(id string, eventType domain.EventType, sequence int64, at time.Time, data map[string]any) domain.FinancialEvent {
	return domain.NewFinancialEvent(id, eventType, "hoa-1", "member-1", domain.AggregateTypeMember, sequence, at, data, nil)
}

func strPtr(s string) *string { return &s }

func txn(id string, txType domain.TransactionType, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:              id,
		TenantID:        "hoa-1",
		PropertyID:      "prop-1",
		MemberID:        strPtr("member-1"),
		TransactionType: txType,
		Amount:          domain.MustMoney(amount),
		TransactionDate: date,
	}
}

func entry(id, fundID string, amount string, debit bool, date time.Time) domain.LedgerEntry {
	code, name := "4000", "Dues Income"
	if debit {
		code, name = "1000", "Cash"
	}
	return domain.LedgerEntry{
		ID:            id,
		TenantID:      "hoa-1",
		PropertyID:    "prop-1",
		TransactionID: "tx-" + id,
		FundID:        fundID,
		EntryDate:     date,
		AccountCode:   code,
		AccountName:   name,
		Amount:        domain.MustMoney(amount),
		IsDebit:       debit,
	}
}
