package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Event log metrics
	EventsAppended *prometheus.CounterVec
	EventsRejected *prometheus.CounterVec

	// Snapshot metrics
	SnapshotsCreated *prometheus.CounterVec

	// Replay metrics
	ReplayDuration      *prometheus.HistogramVec
	ReplayEventsApplied *prometheus.HistogramVec

	// Reconstruction metrics
	Reconstructions *prometheus.CounterVec
}

var _ usecase.MetricsRecorder = (*Metrics)(nil)

// New creates all metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Event log metrics
		EventsAppended: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoaledger_events_appended_total",
				Help: "Total events appended to the log by type",
			},
			[]string{"event_type"},
		),
		EventsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoaledger_events_rejected_total",
				Help: "Total events rejected by the log by reason",
			},
			[]string{"reason"},
		),

		// Snapshot metrics
		SnapshotsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoaledger_snapshots_created_total",
				Help: "Total snapshots taken by reason",
			},
			[]string{"reason"},
		),

		// Replay metrics
		ReplayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoaledger_replay_duration_seconds",
				Help:    "Duration of aggregate replays",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		ReplayEventsApplied: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoaledger_replay_events_applied",
				Help:    "Events folded per replay",
				Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"mode"},
		),

		// Reconstruction metrics
		Reconstructions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoaledger_reconstructions_total",
				Help: "Total point-in-time reconstructions by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) EventAppended(eventType domain.EventType) {
	m.EventsAppended.WithLabelValues(string(eventType)).Inc()
}

func (m *Metrics) EventRejected(reason string) {
	m.EventsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SnapshotCreated(reason domain.SnapshotReason) {
	m.SnapshotsCreated.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) ReplayObserved(mode string, applied int, elapsed time.Duration) {
	m.ReplayDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.ReplayEventsApplied.WithLabelValues(mode).Observe(float64(applied))
}

func (m *Metrics) ReconstructionPerformed(kind string) {
	m.Reconstructions.WithLabelValues(kind).Inc()
}

// WriteText writes every metric gathered from g in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
