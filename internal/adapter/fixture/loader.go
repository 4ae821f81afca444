package fixture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iho/hoaledger/internal/domain"
)

// DecodeEvents reads a JSON array of event records.
func DecodeEvents(r io.Reader) ([]domain.FinancialEvent, error) {
	var records []EventRecord
	if err := decode(r, &records); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.FinancialEvent, 0, len(records))
	for i := range records {
		evt, err := records[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		events = append(events, evt)
	}
	return events, nil
}

// DecodeTransactions reads a JSON array of transaction records.
func DecodeTransactions(r io.Reader) ([]domain.Transaction, error) {
	var records []TransactionRecord
	if err := decode(r, &records); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(records))
	for i := range records {
		txn, err := records[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// DecodeLedgerEntries reads a JSON array of ledger entry records.
func DecodeLedgerEntries(r io.Reader) ([]domain.LedgerEntry, error) {
	var records []LedgerEntryRecord
	if err := decode(r, &records); err != nil {
		return nil, fmt.Errorf("decode ledger entries: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(records))
	for i := range records {
		entry, err := records[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadEvents reads events from a fixture file. An empty path yields no events.
func LoadEvents(path string) ([]domain.FinancialEvent, error) {
	return load(path, DecodeEvents)
}

// LoadTransactions reads transactions from a fixture file.
func LoadTransactions(path string) ([]domain.Transaction, error) {
	return load(path, DecodeTransactions)
}

// LoadLedgerEntries reads ledger entries from a fixture file.
func LoadLedgerEntries(path string) ([]domain.LedgerEntry, error) {
	return load(path, DecodeLedgerEntries)
}

func load[T any](path string, decodeFn func(io.Reader) ([]T, error)) ([]T, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := decodeFn(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	// Event payloads keep numbers exact.
	dec.UseNumber()
	return dec.Decode(v)
}
