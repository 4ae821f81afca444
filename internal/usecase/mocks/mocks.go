package mocks

import (
	"strconv"
	"sync"
	"time"

	"github.com/iho/hoaledger/internal/domain"
)

// SequentialIDGenerator returns prefix-1, prefix-2, ... in call order.
type SequentialIDGenerator struct {
	Prefix  string
	counter int
	mu      sync.Mutex
}

func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	return &SequentialIDGenerator{Prefix: prefix}
}

func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return g.Prefix + "-" + strconv.Itoa(g.counter)
}

// RecordingMetrics counts every measurement it receives.
type RecordingMetrics struct {
	mu              sync.Mutex
	Appended        map[domain.EventType]int
	Rejected        map[string]int
	Snapshots       map[domain.SnapshotReason]int
	Replays         map[string]int
	ReplayedEvents  map[string]int
	Reconstructions map[string]int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Appended:        make(map[domain.EventType]int),
		Rejected:        make(map[string]int),
		Snapshots:       make(map[domain.SnapshotReason]int),
		Replays:         make(map[string]int),
		ReplayedEvents:  make(map[string]int),
		Reconstructions: make(map[string]int),
	}
}

func (m *RecordingMetrics) EventAppended(eventType domain.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended[eventType]++
}

func (m *RecordingMetrics) EventRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[reason]++
}

func (m *RecordingMetrics) SnapshotCreated(reason domain.SnapshotReason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots[reason]++
}

func (m *RecordingMetrics) ReplayObserved(mode string, applied int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replays[mode]++
	m.ReplayedEvents[mode] += applied
}

func (m *RecordingMetrics) ReconstructionPerformed(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reconstructions[kind]++
}
