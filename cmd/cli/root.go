package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/hoaledger/internal/adapter/fixture"
	"github.com/iho/hoaledger/internal/infrastructure/config"
	"github.com/iho/hoaledger/internal/infrastructure/metrics"
)

// cli carries flag values and the app built from them before each command runs.
type cli struct {
	cfg  *config.Config
	log  zerolog.Logger
	opts options
	app  *app
}

func newRootCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	c := &cli{cfg: cfg, log: log}

	rootCmd := &cobra.Command{
		Use:           "hoaledger",
		Short:         "HOA ledger event log and point-in-time reconstruction",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(c.cfg, c.log, c.opts)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !c.opts.dumpMetrics || c.app == nil {
				return nil
			}
			return metrics.WriteText(cmd.ErrOrStderr(), c.app.registry)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.eventsPath, "events", "", "JSON file of financial events")
	flags.StringVar(&c.opts.transactionsPath, "transactions", "", "JSON file of transactions")
	flags.StringVar(&c.opts.entriesPath, "entries", "", "JSON file of ledger entries")
	flags.StringVar(&c.opts.tenantID, "tenant", "", "tenant id (defaults to DEFAULT_TENANT_ID)")
	flags.StringVar(&c.opts.folder, "folder", folderTyped, "event folder: typed or merge")
	flags.BoolVar(&c.opts.dumpMetrics, "metrics", false, "print Prometheus metrics to stderr after the command")

	rootCmd.AddCommand(
		c.eventsCmd(),
		c.replayCmd(),
		c.balanceCmd(),
		c.historyCmd(),
		c.summaryCmd(),
		c.agingCmd(),
		c.checkCmd(),
	)

	return rootCmd
}

func (c *cli) write(cmd *cobra.Command, v any) error {
	return fixture.WriteJSON(cmd.OutOrStdout(), v)
}

// dateFlag parses a YYYY-MM-DD flag value, falling back to today (UTC).
func dateFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return fixture.ParseDate(value)
}

// dateRange parses --from and --to; both are required.
func dateRange(from, to string) (time.Time, time.Time, error) {
	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to are required")
	}
	start, err := fixture.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := fixture.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return start, end, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
