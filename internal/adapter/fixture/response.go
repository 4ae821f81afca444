package fixture

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hoaledger/internal/domain"
)

// Money renders an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return domain.Quantize(d).StringFixed(domain.MoneyPlaces)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// EventResponse represents an event in CLI output.
type EventResponse struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	TenantID      string         `json:"tenant_id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	Timestamp     time.Time      `json:"timestamp"`
	Data          map[string]any `json:"data"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Version       int            `json:"version"`
	Sequence      int64          `json:"sequence"`
}

// EventFromDomain converts a domain event to a response.
func EventFromDomain(e domain.FinancialEvent) EventResponse {
	return EventResponse{
		EventID:       e.EventID,
		EventType:     string(e.EventType),
		TenantID:      e.TenantID,
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		Timestamp:     e.Timestamp,
		Data:          e.Data,
		Metadata:      e.Metadata,
		Version:       e.Version,
		Sequence:      e.Sequence,
	}
}

// EventsFromDomain converts domain events to responses.
func EventsFromDomain(events []domain.FinancialEvent) []EventResponse {
	result := make([]EventResponse, len(events))
	for i, e := range events {
		result[i] = EventFromDomain(e)
	}
	return result
}

// SnapshotResponse represents a snapshot in CLI output.
type SnapshotResponse struct {
	SnapshotID        string       `json:"snapshot_id"`
	AggregateID       string       `json:"aggregate_id"`
	AggregateType     string       `json:"aggregate_type"`
	TenantID          string       `json:"tenant_id"`
	State             domain.State `json:"state"`
	LastEventSequence int64        `json:"last_event_sequence"`
	EventCount        int          `json:"event_count"`
	SnapshotTimestamp time.Time    `json:"snapshot_timestamp"`
	CreatedBy         string       `json:"created_by"`
	Reason            string       `json:"reason"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s *domain.Snapshot) *SnapshotResponse {
	return &SnapshotResponse{
		SnapshotID:        s.SnapshotID,
		AggregateID:       s.AggregateID,
		AggregateType:     s.AggregateType,
		TenantID:          s.TenantID,
		State:             s.State,
		LastEventSequence: s.LastEventSequence,
		EventCount:        s.EventCount,
		SnapshotTimestamp: s.SnapshotTimestamp,
		CreatedBy:         s.CreatedBy,
		Reason:            string(s.Reason),
	}
}

// StateResponse wraps a replayed aggregate state.
type StateResponse struct {
	AggregateID string       `json:"aggregate_id"`
	Mode        string       `json:"mode"`
	State       domain.State `json:"state"`
}

// TransactionResponse represents a transaction in CLI output.
type TransactionResponse struct {
	ID              string  `json:"id"`
	TenantID        string  `json:"tenant_id"`
	PropertyID      string  `json:"property_id"`
	MemberID        *string `json:"member_id,omitempty"`
	FundID          *string `json:"fund_id,omitempty"`
	TransactionType string  `json:"transaction_type"`
	Amount          string  `json:"amount"`
	TransactionDate string  `json:"transaction_date"`
	Description     string  `json:"description"`
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txns))
	for i := range txns {
		t := &txns[i]
		result[i] = TransactionResponse{
			ID:              t.ID,
			TenantID:        t.TenantID,
			PropertyID:      t.PropertyID,
			MemberID:        t.MemberID,
			FundID:          t.FundID,
			TransactionType: string(t.TransactionType),
			Amount:          Money(t.Amount),
			TransactionDate: formatDate(t.TransactionDate),
			Description:     t.Description,
		}
	}
	return result
}

// MemberBalanceResponse represents a member balance snapshot.
type MemberBalanceResponse struct {
	TenantID        string    `json:"tenant_id"`
	MemberID        string    `json:"member_id"`
	AsOfDate        string    `json:"as_of_date"`
	TotalOwed       string    `json:"total_owed"`
	TotalPaid       string    `json:"total_paid"`
	CurrentBalance  string    `json:"current_balance"`
	NumTransactions int       `json:"num_transactions"`
	ReconstructedAt time.Time `json:"reconstructed_at"`
}

// MemberBalanceFromDomain converts a member balance snapshot to a response.
func MemberBalanceFromDomain(s *domain.MemberBalanceSnapshot) *MemberBalanceResponse {
	return &MemberBalanceResponse{
		TenantID:        s.TenantID,
		MemberID:        s.MemberID,
		AsOfDate:        formatDate(s.AsOfDate),
		TotalOwed:       Money(s.TotalOwed),
		TotalPaid:       Money(s.TotalPaid),
		CurrentBalance:  Money(s.CurrentBalance),
		NumTransactions: s.NumTransactions,
		ReconstructedAt: s.ReconstructedAt,
	}
}

// FundBalanceResponse represents a fund balance snapshot.
type FundBalanceResponse struct {
	TenantID         string    `json:"tenant_id"`
	FundID           string    `json:"fund_id"`
	AsOfDate         string    `json:"as_of_date"`
	TotalDebits      string    `json:"total_debits"`
	TotalCredits     string    `json:"total_credits"`
	CurrentBalance   string    `json:"current_balance"`
	NumDebitEntries  int       `json:"num_debit_entries"`
	NumCreditEntries int       `json:"num_credit_entries"`
	ReconstructedAt  time.Time `json:"reconstructed_at"`
}

// FundBalanceFromDomain converts a fund balance snapshot to a response.
func FundBalanceFromDomain(s *domain.FundBalanceSnapshot) *FundBalanceResponse {
	return &FundBalanceResponse{
		TenantID:         s.TenantID,
		FundID:           s.FundID,
		AsOfDate:         formatDate(s.AsOfDate),
		TotalDebits:      Money(s.TotalDebits),
		TotalCredits:     Money(s.TotalCredits),
		CurrentBalance:   Money(s.CurrentBalance),
		NumDebitEntries:  s.NumDebitEntries,
		NumCreditEntries: s.NumCreditEntries,
		ReconstructedAt:  s.ReconstructedAt,
	}
}

// BalancePointResponse is one dated balance.
type BalancePointResponse struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

// BalanceHistoryResponse represents a fund balance history.
type BalanceHistoryResponse struct {
	TenantID        string                 `json:"tenant_id"`
	FundID          string                 `json:"fund_id"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	OpeningBalance  string                 `json:"opening_balance"`
	ClosingBalance  string                 `json:"closing_balance"`
	NetChange       string                 `json:"net_change"`
	NumTransactions int                    `json:"num_transactions"`
	BalancePoints   []BalancePointResponse `json:"balance_points"`
}

// BalanceHistoryFromDomain converts a balance history to a response.
func BalanceHistoryFromDomain(h *domain.BalanceHistory) *BalanceHistoryResponse {
	points := make([]BalancePointResponse, len(h.BalancePoints))
	for i, p := range h.BalancePoints {
		points[i] = BalancePointResponse{Date: formatDate(p.Date), Balance: Money(p.Balance)}
	}
	return &BalanceHistoryResponse{
		TenantID:        h.TenantID,
		FundID:          h.FundID,
		StartDate:       formatDate(h.StartDate),
		EndDate:         formatDate(h.EndDate),
		OpeningBalance:  Money(h.OpeningBalance),
		ClosingBalance:  Money(h.ClosingBalance),
		NetChange:       Money(h.NetChange),
		NumTransactions: h.NumTransactions,
		BalancePoints:   points,
	}
}

// PropertySnapshotResponse represents a property financial snapshot.
type PropertySnapshotResponse struct {
	TenantID               string            `json:"tenant_id"`
	PropertyID             string            `json:"property_id"`
	AsOfDate               string            `json:"as_of_date"`
	FundBalances           map[string]string `json:"fund_balances"`
	TotalFundBalance       string            `json:"total_fund_balance"`
	MemberBalances         map[string]string `json:"member_balances"`
	TotalMemberReceivables string            `json:"total_member_receivables"`
	NumActiveMembers       int               `json:"num_active_members"`
	NumFunds               int               `json:"num_funds"`
	ReconstructedAt        time.Time         `json:"reconstructed_at"`
}

func moneyMap(in map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = Money(v)
	}
	return out
}

// PropertySnapshotFromDomain converts a property snapshot to a response.
func PropertySnapshotFromDomain(s *domain.PropertyFinancialSnapshot) *PropertySnapshotResponse {
	return &PropertySnapshotResponse{
		TenantID:               s.TenantID,
		PropertyID:             s.PropertyID,
		AsOfDate:               formatDate(s.AsOfDate),
		FundBalances:           moneyMap(s.FundBalances),
		TotalFundBalance:       Money(s.TotalFundBalance),
		MemberBalances:         moneyMap(s.MemberBalances),
		TotalMemberReceivables: Money(s.TotalMemberReceivables),
		NumActiveMembers:       s.NumActiveMembers,
		NumFunds:               s.NumFunds,
		ReconstructedAt:        s.ReconstructedAt,
	}
}

// TransactionSummaryResponse represents an income/expense summary.
type TransactionSummaryResponse struct {
	TenantID          string `json:"tenant_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	TotalIncome       string `json:"total_income"`
	TotalExpenses     string `json:"total_expenses"`
	NetIncome         string `json:"net_income"`
	ExpenseRatio      string `json:"expense_ratio"`
	TotalTransactions int    `json:"total_transactions"`
	NumIncome         int    `json:"num_income"`
	NumExpenses       int    `json:"num_expenses"`
}

// TransactionSummaryFromDomain converts a summary to a response.
func TransactionSummaryFromDomain(s *domain.TransactionSummary) *TransactionSummaryResponse {
	return &TransactionSummaryResponse{
		TenantID:          s.TenantID,
		StartDate:         formatDate(s.StartDate),
		EndDate:           formatDate(s.EndDate),
		TotalIncome:       Money(s.TotalIncome),
		TotalExpenses:     Money(s.TotalExpenses),
		NetIncome:         Money(s.NetIncome),
		ExpenseRatio:      Money(s.ExpenseRatio),
		TotalTransactions: s.TotalTransactions,
		NumIncome:         s.NumIncome,
		NumExpenses:       s.NumExpenses,
	}
}

// AgingBucketResponse is the amount outstanding in one bucket.
type AgingBucketResponse struct {
	Bucket string `json:"bucket"`
	Amount string `json:"amount"`
}

// MemberAgingResponse represents a member aging snapshot.
type MemberAgingResponse struct {
	TenantID         string                `json:"tenant_id"`
	MemberID         string                `json:"member_id"`
	AsOfDate         string                `json:"as_of_date"`
	Buckets          []AgingBucketResponse `json:"buckets"`
	TotalOutstanding string                `json:"total_outstanding"`
	ReconstructedAt  time.Time             `json:"reconstructed_at"`
}

// MemberAgingFromDomain converts an aging snapshot to a response. Buckets are
// listed newest first.
func MemberAgingFromDomain(s *domain.MemberAgingSnapshot) *MemberAgingResponse {
	buckets := make([]AgingBucketResponse, 0, len(domain.AgingBuckets))
	for _, b := range domain.AgingBuckets {
		buckets = append(buckets, AgingBucketResponse{Bucket: string(b), Amount: Money(s.Buckets[b])})
	}
	return &MemberAgingResponse{
		TenantID:         s.TenantID,
		MemberID:         s.MemberID,
		AsOfDate:         formatDate(s.AsOfDate),
		Buckets:          buckets,
		TotalOutstanding: Money(s.TotalOutstanding),
		ReconstructedAt:  s.ReconstructedAt,
	}
}

// BalanceCheckResponse reports whether ledger entries balance per transaction.
type BalanceCheckResponse struct {
	Balanced     bool     `json:"balanced"`
	NumEntries   int      `json:"num_entries"`
	Transactions int      `json:"transactions"`
	Unbalanced   []string `json:"unbalanced,omitempty"`
}

// CheckBalanced groups entries by transaction and validates each group.
func CheckBalanced(entries []domain.LedgerEntry) *BalanceCheckResponse {
	groups := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		groups[e.TransactionID] = append(groups[e.TransactionID], e)
	}

	resp := &BalanceCheckResponse{Balanced: true, NumEntries: len(entries), Transactions: len(groups)}
	for txID, group := range groups {
		if err := domain.ValidateBalancedEntries(group); err != nil {
			resp.Balanced = false
			resp.Unbalanced = append(resp.Unbalanced, txID+": "+err.Error())
		}
	}
	sort.Strings(resp.Unbalanced)

	return resp
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
