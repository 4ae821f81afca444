package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/hoaledger/internal/adapter/fixture"
	"github.com/iho/hoaledger/internal/adapter/repository/memory"
	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/infrastructure/config"
	"github.com/iho/hoaledger/internal/infrastructure/idgen"
	"github.com/iho/hoaledger/internal/infrastructure/metrics"
	"github.com/iho/hoaledger/internal/usecase"
)

// Folder names accepted by --folder.
const (
	folderTyped = "typed"
	folderMerge = "merge"
)

type options struct {
	eventsPath       string
	transactionsPath string
	entriesPath      string
	tenantID         string
	folder           string
	dumpMetrics      bool
}

// app holds the wired stores and use cases for one CLI invocation.
type app struct {
	registry     *prometheus.Registry
	events       *usecase.EventUseCase
	replay       *usecase.ReplayUseCase
	recon        *usecase.ReconstructionUseCase
	transactions []domain.Transaction
	entries      []domain.LedgerEntry
	tenantID     string
}

func newApp(cfg *config.Config, log zerolog.Logger, opts options) (*app, error) {
	var folder usecase.Folder
	switch opts.folder {
	case folderTyped, "":
		folder = usecase.NewTypedFolder()
	case folderMerge:
		folder = usecase.MergeFolder{}
	default:
		return nil, fmt.Errorf("unknown folder %q, want %s or %s", opts.folder, folderTyped, folderMerge)
	}

	registry := prometheus.NewRegistry()
	var recorder usecase.MetricsRecorder
	if cfg.MetricsEnabled || opts.dumpMetrics {
		recorder = metrics.New(registry)
	}

	eventRepo := memory.NewEventRepository(memory.WithStrictSequence(cfg.StrictSequence))
	snapshotRepo := memory.NewSnapshotRepository()

	replay := usecase.NewReplayUseCase(eventRepo, snapshotRepo, folder, idgen.NewULIDGenerator("snap_")).
		WithMetrics(recorder).
		WithLogger(log)
	events := usecase.NewEventUseCase(eventRepo, replay, idgen.NewULIDGenerator("evt_")).
		WithMetrics(recorder).
		WithLogger(log).
		WithSnapshotPolicy(cfg.SnapshotEvery, cfg.SnapshotCreatedBy)
	recon := usecase.NewReconstructionUseCase().WithMetrics(recorder)

	loaded, err := fixture.LoadEvents(opts.eventsPath)
	if err != nil {
		return nil, err
	}
	for _, evt := range loaded {
		if err := events.Append(evt); err != nil {
			return nil, fmt.Errorf("load %s: %w", opts.eventsPath, err)
		}
	}

	transactions, err := fixture.LoadTransactions(opts.transactionsPath)
	if err != nil {
		return nil, err
	}
	entries, err := fixture.LoadLedgerEntries(opts.entriesPath)
	if err != nil {
		return nil, err
	}

	tenantID := opts.tenantID
	if tenantID == "" {
		tenantID = cfg.DefaultTenantID
	}

	log.Debug().
		Int("events", len(loaded)).
		Int("transactions", len(transactions)).
		Int("entries", len(entries)).
		Msg("fixtures loaded")

	return &app{
		registry:     registry,
		events:       events,
		replay:       replay,
		recon:        recon,
		transactions: forTenant(transactions, tenantID),
		entries:      entriesForTenant(entries, tenantID),
		tenantID:     tenantID,
	}, nil
}

func forTenant(txns []domain.Transaction, tenantID string) []domain.Transaction {
	if tenantID == "" {
		return txns
	}
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out
}

func entriesForTenant(entries []domain.LedgerEntry, tenantID string) []domain.LedgerEntry {
	if tenantID == "" {
		return entries
	}
	out := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out
}
