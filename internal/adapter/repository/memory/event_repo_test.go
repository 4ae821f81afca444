package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newEvent(id, aggregateID string, sequence int64, at time.Time) domain.FinancialEvent {
	return domain.NewFinancialEvent(
		id,
		domain.EventTypePaymentReceived,
		"hoa-1",
		aggregateID,
		domain.AggregateTypeMember,
		sequence,
		at,
		map[string]any{"amount": "100.00"},
		nil,
	)
}

func int64Ptr(v int64) *int64 { return &v }

func TestEventRepository_AppendAndGetEvents(t *testing.T) {
	repo := NewEventRepository()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repo.Append(newEvent("e"+string(rune('0'+i)), "m1", i, base.Add(time.Duration(i)*time.Hour))))
	}
	require.NoError(t, repo.Append(newEvent("other", "m2", 1, base)))

	tests := []struct {
		name      string
		from      int64
		to        *int64
		wantFirst int64
		wantLen   int
	}{
		{name: "whole stream", from: 0, to: nil, wantFirst: 1, wantLen: 5},
		{name: "from sequence", from: 3, to: nil, wantFirst: 3, wantLen: 3},
		{name: "inclusive range", from: 2, to: int64Ptr(4), wantFirst: 2, wantLen: 3},
		{name: "single sequence", from: 5, to: int64Ptr(5), wantFirst: 5, wantLen: 1},
		{name: "past the end", from: 6, to: nil, wantLen: 0},
		{name: "empty range", from: 4, to: int64Ptr(2), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := repo.GetEvents("m1", tt.from, tt.to)
			require.Len(t, events, tt.wantLen)
			if tt.wantLen == 0 {
				return
			}
			assert.Equal(t, tt.wantFirst, events[0].Sequence)
			for i := 1; i < len(events); i++ {
				assert.Less(t, events[i-1].Sequence, events[i].Sequence)
			}
		})
	}
}

func TestEventRepository_UnknownAggregate(t *testing.T) {
	repo := NewEventRepository()

	events := repo.GetEvents("missing", 0, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Equal(t, 0, repo.GetEventCount("missing"))
	assert.Equal(t, int64(0), repo.LastSequence("missing"))
}

func TestEventRepository_RejectsBadSequences(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		seqs    []int64
		next    int64
		wantErr error
	}{
		{name: "strict duplicate", strict: true, seqs: []int64{1, 2}, next: 2, wantErr: domain.ErrDuplicateSequence},
		{name: "strict going backwards", strict: true, seqs: []int64{1, 3}, next: 2, wantErr: domain.ErrNonMonotonicSequence},
		{name: "strict gap is allowed", strict: true, seqs: []int64{1, 2}, next: 5},
		{name: "backfill out of order", strict: false, seqs: []int64{1, 3}, next: 2},
		{name: "backfill duplicate", strict: false, seqs: []int64{3, 1}, next: 1, wantErr: domain.ErrDuplicateSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewEventRepository(WithStrictSequence(tt.strict))
			for i, seq := range tt.seqs {
				require.NoError(t, repo.Append(newEvent("seed-"+string(rune('a'+i)), "m1", seq, base)))
			}

			err := repo.Append(newEvent("next", "m1", tt.next, base))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, len(tt.seqs), repo.GetEventCount("m1"), "rejected event must not be stored")
				assert.Equal(t, len(tt.seqs), repo.GetEventCount(""))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.seqs)+1, repo.GetEventCount("m1"))
		})
	}
}

func TestEventRepository_BackfillReadsInSequenceOrder(t *testing.T) {
	repo := NewEventRepository(WithStrictSequence(false))

	for _, seq := range []int64{4, 1, 3, 2} {
		require.NoError(t, repo.Append(newEvent("e", "m1", seq, base)))
	}

	events := repo.GetEvents("m1", 0, nil)
	require.Len(t, events, 4)
	for i, evt := range events {
		assert.Equal(t, int64(i+1), evt.Sequence)
	}
	assert.Equal(t, int64(4), repo.LastSequence("m1"))
}

func TestEventRepository_RejectsInvalidEvent(t *testing.T) {
	repo := NewEventRepository()

	evt := newEvent("e1", "", 1, base)
	err := repo.Append(evt)

	require.ErrorIs(t, err, domain.ErrInvalidEvent)
	require.ErrorIs(t, err, domain.ErrAggregateIDRequired)
	assert.Equal(t, 0, repo.GetEventCount(""))
}

func TestEventRepository_StoredEventsAreDetached(t *testing.T) {
	repo := NewEventRepository()

	evt := newEvent("e1", "m1", 1, base)
	require.NoError(t, repo.Append(evt))

	evt.Data["amount"] = "999.99"

	stored := repo.GetEvents("m1", 0, nil)
	require.Len(t, stored, 1)
	assert.Equal(t, "100.00", stored[0].Data["amount"])
}

func TestEventRepository_GetAllEvents(t *testing.T) {
	repo := NewEventRepository()

	late := newEvent("late", "m1", 1, base.Add(48*time.Hour))
	early := newEvent("early", "m2", 1, base)
	tie1 := newEvent("tie-1", "m3", 1, base.Add(24*time.Hour))
	tie2 := newEvent("tie-2", "m4", 1, base.Add(24*time.Hour))
	other := newEvent("other-tenant", "m5", 1, base.Add(24*time.Hour))
	other.TenantID = "hoa-2"
	fund := newEvent("fund", "f1", 1, base.Add(72*time.Hour))
	fund.EventType = domain.EventTypeFundCreated
	fund.AggregateType = domain.AggregateTypeFund

	for _, evt := range []domain.FinancialEvent{late, early, tie1, tie2, other, fund} {
		require.NoError(t, repo.Append(evt))
	}

	ids := func(events []domain.FinancialEvent) []string {
		out := make([]string, 0, len(events))
		for _, evt := range events {
			out = append(out, evt.EventID)
		}
		return out
	}

	from := base.Add(24 * time.Hour)
	to := base.Add(48 * time.Hour)

	tests := []struct {
		name   string
		filter usecase.EventFilter
		want   []string
	}{
		{
			name:   "no filter orders by timestamp then append order",
			filter: usecase.EventFilter{},
			want:   []string{"early", "tie-1", "tie-2", "other-tenant", "late", "fund"},
		},
		{
			name:   "tenant",
			filter: usecase.EventFilter{TenantID: "hoa-2"},
			want:   []string{"other-tenant"},
		},
		{
			name:   "event type",
			filter: usecase.EventFilter{EventType: domain.EventTypeFundCreated},
			want:   []string{"fund"},
		},
		{
			name:   "inclusive time window",
			filter: usecase.EventFilter{FromTimestamp: &from, ToTimestamp: &to},
			want:   []string{"tie-1", "tie-2", "other-tenant", "late"},
		},
		{
			name:   "filters combine",
			filter: usecase.EventFilter{TenantID: "hoa-1", FromTimestamp: &from, ToTimestamp: &to},
			want:   []string{"tie-1", "tie-2", "late"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(repo.GetAllEvents(tt.filter)))
		})
	}
}

func TestEventRepository_CountsAreMonotonic(t *testing.T) {
	repo := NewEventRepository()

	prev := repo.GetEventCount("")
	for i := int64(1); i <= 10; i++ {
		require.NoError(t, repo.Append(newEvent("e", "m1", i, base)))
		count := repo.GetEventCount("")
		assert.Equal(t, prev+1, count)
		prev = count
	}
}

func TestEventRepository_ConcurrentAppends(t *testing.T) {
	repo := NewEventRepository()

	const aggregates = 8
	const perAggregate = 50

	var wg sync.WaitGroup
	for a := range aggregates {
		wg.Add(1)
		go func(aggregateID string) {
			defer wg.Done()
			for seq := int64(1); seq <= perAggregate; seq++ {
				assert.NoError(t, repo.Append(newEvent("e", aggregateID, seq, base)))
			}
		}("m" + string(rune('a'+a)))
	}

	// Readers run alongside the writers.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			events := repo.GetEvents("ma", 0, nil)
			for i := 1; i < len(events); i++ {
				assert.Less(t, events[i-1].Sequence, events[i].Sequence)
			}
			_ = repo.GetAllEvents(usecase.EventFilter{})
		}
	}()

	wg.Wait()
	<-done

	assert.Equal(t, aggregates*perAggregate, repo.GetEventCount(""))
	for a := range aggregates {
		assert.Equal(t, perAggregate, repo.GetEventCount("m"+string(rune('a'+a))))
	}
}

func TestEventRepository_Clear(t *testing.T) {
	repo := NewEventRepository()
	require.NoError(t, repo.Append(newEvent("e1", "m1", 1, base)))

	repo.Clear()

	assert.Equal(t, 0, repo.GetEventCount(""))
	assert.Equal(t, int64(0), repo.LastSequence("m1"))
	require.NoError(t, repo.Append(newEvent("e1", "m1", 1, base)))
}
