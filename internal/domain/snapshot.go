package domain

import "time"

// SnapshotReason records why a snapshot was taken.
type SnapshotReason string

const (
	SnapshotReasonManual    SnapshotReason = "manual"    // requested by a caller
	SnapshotReasonThreshold SnapshotReason = "threshold" // auto policy after N events
)

// Snapshot caches the folded state of an aggregate up to LastEventSequence.
// It is a performance artifact: replaying events 1..LastEventSequence from
// scratch always yields State. EventCount is the number of events folded; a
// stream holding more events at or below LastEventSequence was backfilled
// after the snapshot and the snapshot no longer describes it.
type Snapshot struct {
	SnapshotTimestamp time.Time
	State             State
	SnapshotID        string
	AggregateID       string
	AggregateType     string
	TenantID          string
	CreatedBy         string
	Reason            SnapshotReason
	LastEventSequence int64
	EventCount        int
}

// Supersedes reports whether s may replace other as the latest snapshot.
// At the same sequence, the snapshot covering more events wins.
func (s Snapshot) Supersedes(other Snapshot) bool {
	if s.LastEventSequence != other.LastEventSequence {
		return s.LastEventSequence > other.LastEventSequence
	}
	return s.EventCount >= other.EventCount
}

// Covers reports whether s still describes a stream that holds covered events
// at or below LastEventSequence.
func (s Snapshot) Covers(covered int) bool {
	return covered == s.EventCount
}
