package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hoaledger/internal/domain"
)

type openCharge struct {
	date   time.Time
	amount decimal.Decimal
}

// ReconstructMemberAging splits what the member owes as of asOf into aging
// buckets. Credits (payments net of refunds, plus negative adjustments) settle
// the oldest charges first; whatever remains is bucketed by days since the
// charge date. The buckets always sum to TotalOutstanding, which equals the
// negated balance when the member owes and zero otherwise.
func (uc *ReconstructionUseCase) ReconstructMemberAging(
	tenantID, memberID string,
	asOf time.Time,
	transactions []domain.Transaction,
) *domain.MemberAgingSnapshot {
	uc.metrics.ReconstructionPerformed(ReconstructionAging)

	var charges []openCharge
	credits := decimal.Zero

	for i := range transactions {
		txn := &transactions[i]
		if txn.IsVoid || !txn.BelongsToMember(memberID) || !domain.OnOrBefore(txn.TransactionDate, asOf) {
			continue
		}

		class := txn.TransactionType.Class()
		switch {
		case class.MemberPaid:
			credits = credits.Add(txn.Amount)
		case class.MemberRefund:
			credits = credits.Sub(txn.Amount)
		case class.MemberOwed:
			charges = append(charges, openCharge{date: domain.DayOf(txn.TransactionDate), amount: txn.Amount})
		case class.MemberAdjust:
			if txn.Amount.IsPositive() {
				charges = append(charges, openCharge{date: domain.DayOf(txn.TransactionDate), amount: txn.Amount})
			} else {
				credits = credits.Add(txn.Amount.Abs())
			}
		}
	}

	sort.SliceStable(charges, func(i, j int) bool { return charges[i].date.Before(charges[j].date) })

	buckets := make(map[domain.AgingBucket]decimal.Decimal, len(domain.AgingBuckets))
	for _, bucket := range domain.AgingBuckets {
		buckets[bucket] = decimal.Zero
	}

	// Refunds beyond what was paid are owed back immediately.
	if credits.IsNegative() {
		buckets[domain.AgingCurrent] = credits.Abs()
		credits = decimal.Zero
	}

	for _, charge := range charges {
		open := charge.amount
		if credits.IsPositive() {
			applied := decimal.Min(credits, open)
			credits = credits.Sub(applied)
			open = open.Sub(applied)
		}
		if !open.IsPositive() {
			continue
		}
		bucket := domain.BucketForDays(domain.DaysBetween(charge.date, asOf))
		buckets[bucket] = buckets[bucket].Add(open)
	}

	total := decimal.Zero
	for bucket, amount := range buckets {
		buckets[bucket] = domain.Quantize(amount)
		total = total.Add(amount)
	}

	return &domain.MemberAgingSnapshot{
		TenantID:         tenantID,
		MemberID:         memberID,
		AsOfDate:         domain.DayOf(asOf),
		Buckets:          buckets,
		TotalOutstanding: domain.Quantize(total),
		ReconstructedAt:  uc.now(),
	}
}
