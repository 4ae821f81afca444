package memory

import (
	"sync"

	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
)

// SnapshotRepository keeps the latest snapshot per aggregate.
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
}

// NewSnapshotRepository creates an empty snapshot store.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		snapshots: make(map[string]domain.Snapshot),
	}
}

var _ usecase.SnapshotRepository = (*SnapshotRepository)(nil)

// Save implements usecase.SnapshotRepository. The stored state is a private
// copy.
func (r *SnapshotRepository) Save(snapshot domain.Snapshot) bool {
	snapshot.State = snapshot.State.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.snapshots[snapshot.AggregateID]; ok && !snapshot.Supersedes(current) {
		return false
	}
	r.snapshots[snapshot.AggregateID] = snapshot

	return true
}

// GetLatest implements usecase.SnapshotRepository. The returned state is a
// copy; changing it does not affect the stored snapshot.
func (r *SnapshotRepository) GetLatest(aggregateID string) (domain.Snapshot, bool) {
	r.mu.RLock()
	snapshot, ok := r.snapshots[aggregateID]
	r.mu.RUnlock()

	if !ok {
		return domain.Snapshot{}, false
	}
	snapshot.State = snapshot.State.Clone()

	return snapshot, true
}

// Delete implements usecase.SnapshotRepository.
func (r *SnapshotRepository) Delete(aggregateID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, aggregateID)
}

// Clear drops every snapshot. Tests only.
func (r *SnapshotRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = make(map[string]domain.Snapshot)
}
