package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iho/hoaledger/internal/adapter/fixture"
	"github.com/iho/hoaledger/internal/domain"
	"github.com/iho/hoaledger/internal/usecase"
)

func (c *cli) eventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Query the event log",
	}

	var (
		aggregateID string
		eventType   string
		since       string
		until       string
		fromSeq     int64
		toSeq       int64
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events for one aggregate or across the global stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if aggregateID != "" {
				var upper *int64
				if toSeq >= 0 {
					upper = &toSeq
				}
				return c.write(cmd, fixture.EventsFromDomain(c.app.events.GetEvents(aggregateID, fromSeq, upper)))
			}

			filter := usecase.EventFilter{TenantID: c.app.tenantID}
			if eventType != "" {
				t, err := domain.ParseEventType(eventType)
				if err != nil {
					return err
				}
				filter.EventType = t
			}
			if since != "" {
				from, err := fixture.ParseDate(since)
				if err != nil {
					return err
				}
				filter.FromTimestamp = &from
			}
			if until != "" {
				to, err := fixture.ParseDate(until)
				if err != nil {
					return err
				}
				to = domain.EndOfDay(to)
				filter.ToTimestamp = &to
			}
			return c.write(cmd, fixture.EventsFromDomain(c.app.events.GetAllEvents(filter)))
		},
	}
	listCmd.Flags().StringVar(&aggregateID, "aggregate", "", "aggregate id; empty lists the global stream")
	listCmd.Flags().Int64Var(&fromSeq, "from-seq", 0, "lowest sequence (aggregate only)")
	listCmd.Flags().Int64Var(&toSeq, "to-seq", -1, "highest sequence, -1 for no bound (aggregate only)")
	listCmd.Flags().StringVar(&eventType, "type", "", "event type filter (global only)")
	listCmd.Flags().StringVar(&since, "since", "", "earliest event date YYYY-MM-DD (global only)")
	listCmd.Flags().StringVar(&until, "until", "", "latest event date YYYY-MM-DD, inclusive (global only)")

	var countAggregate string
	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count events for one aggregate or the whole log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.write(cmd, map[string]any{
				"aggregate_id": countAggregate,
				"count":        c.app.events.GetEventCount(countAggregate),
			})
		},
	}
	countCmd.Flags().StringVar(&countAggregate, "aggregate", "", "aggregate id; empty counts every event")

	eventsCmd.AddCommand(listCmd, countCmd)
	return eventsCmd
}

func (c *cli) replayCmd() *cobra.Command {
	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild aggregate state from the event log",
	}

	allCmd := &cobra.Command{
		Use:   "all <aggregate-id>",
		Short: "Fold every event of the aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.app.replay.ReplayAll(args[0])
			if err != nil {
				return err
			}
			return c.write(cmd, fixture.StateResponse{AggregateID: args[0], Mode: usecase.ReplayModeAll, State: state})
		},
	}

	toDateCmd := &cobra.Command{
		Use:   "to-date <aggregate-id> <YYYY-MM-DD>",
		Short: "Fold the aggregate's events up to the end of a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := fixture.ParseDate(args[1])
			if err != nil {
				return err
			}
			state, err := c.app.replay.ReplayToDate(args[0], asOf)
			if err != nil {
				return err
			}
			return c.write(cmd, fixture.StateResponse{AggregateID: args[0], Mode: usecase.ReplayModeToDate, State: state})
		},
	}

	var createdBy string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot <aggregate-id>",
		Short: "Take a snapshot of the aggregate and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events := c.app.events.GetEvents(args[0], 0, nil)
			if len(events) == 0 {
				return fmt.Errorf("no events for aggregate %q", args[0])
			}
			last := events[len(events)-1]
			if createdBy == "" {
				createdBy = c.cfg.SnapshotCreatedBy
			}
			snapshot, err := c.app.replay.CreateSnapshot(usecase.CreateSnapshotInput{
				AggregateID:   args[0],
				AggregateType: last.AggregateType,
				TenantID:      last.TenantID,
				CreatedBy:     createdBy,
				Reason:        domain.SnapshotReasonManual,
			})
			if err != nil {
				return err
			}
			return c.write(cmd, fixture.SnapshotFromDomain(snapshot))
		},
	}
	snapshotCmd.Flags().StringVar(&createdBy, "created-by", "", "snapshot author (defaults to SNAPSHOT_CREATED_BY)")

	withSnapshotCmd := &cobra.Command{
		Use:   "with-snapshot <aggregate-id>",
		Short: "Fold the events after the latest snapshot onto its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := c.app.replay.ReplayWithSnapshot(args[0])
			if err != nil {
				return err
			}
			return c.write(cmd, fixture.StateResponse{AggregateID: args[0], Mode: usecase.ReplayModeWithSnapshot, State: state})
		},
	}

	replayCmd.AddCommand(allCmd, toDateCmd, snapshotCmd, withSnapshotCmd)
	return replayCmd
}

func (c *cli) balanceCmd() *cobra.Command {
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Reconstruct balances as of a date",
	}

	var memberAsOf string
	memberCmd := &cobra.Command{
		Use:   "member <member-id>",
		Short: "Member balance from transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := dateFlag(memberAsOf)
			if err != nil {
				return err
			}
			snapshot := c.app.recon.ReconstructMemberBalance(c.app.tenantID, args[0], asOf, c.app.transactions)
			return c.write(cmd, fixture.MemberBalanceFromDomain(snapshot))
		},
	}
	memberCmd.Flags().StringVar(&memberAsOf, "as-of", "", "as-of date YYYY-MM-DD (default today)")

	var fundAsOf string
	fundCmd := &cobra.Command{
		Use:   "fund <fund-id>",
		Short: "Fund balance from ledger entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := dateFlag(fundAsOf)
			if err != nil {
				return err
			}
			snapshot := c.app.recon.ReconstructFundBalance(c.app.tenantID, args[0], asOf, c.app.entries)
			return c.write(cmd, fixture.FundBalanceFromDomain(snapshot))
		},
	}
	fundCmd.Flags().StringVar(&fundAsOf, "as-of", "", "as-of date YYYY-MM-DD (default today)")

	var historyFrom, historyTo string
	fundHistoryCmd := &cobra.Command{
		Use:   "fund-history <fund-id>",
		Short: "Fund balance movement over a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dateRange(historyFrom, historyTo)
			if err != nil {
				return err
			}
			history := c.app.recon.GetFundBalanceHistory(c.app.tenantID, args[0], start, end, c.app.entries)
			return c.write(cmd, fixture.BalanceHistoryFromDomain(history))
		},
	}
	fundHistoryCmd.Flags().StringVar(&historyFrom, "from", "", "start date YYYY-MM-DD")
	fundHistoryCmd.Flags().StringVar(&historyTo, "to", "", "end date YYYY-MM-DD")

	var propertyAsOf, memberList, fundList string
	propertyCmd := &cobra.Command{
		Use:   "property <property-id>",
		Short: "Fund and member balances for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := dateFlag(propertyAsOf)
			if err != nil {
				return err
			}
			memberIDs := splitList(memberList)
			if memberIDs == nil {
				memberIDs = propertyMembers(args[0], c.app.transactions)
			}
			fundIDs := splitList(fundList)
			if fundIDs == nil {
				fundIDs = propertyFunds(args[0], c.app.entries)
			}
			snapshot := c.app.recon.ReconstructPropertySnapshot(
				c.app.tenantID, args[0], asOf, c.app.transactions, c.app.entries, memberIDs, fundIDs,
			)
			return c.write(cmd, fixture.PropertySnapshotFromDomain(snapshot))
		},
	}
	propertyCmd.Flags().StringVar(&propertyAsOf, "as-of", "", "as-of date YYYY-MM-DD (default today)")
	propertyCmd.Flags().StringVar(&memberList, "members", "", "comma-separated member ids (default: members with transactions on the property)")
	propertyCmd.Flags().StringVar(&fundList, "funds", "", "comma-separated fund ids (default: funds with entries on the property)")

	balanceCmd.AddCommand(memberCmd, fundCmd, fundHistoryCmd, propertyCmd)
	return balanceCmd
}

func (c *cli) historyCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Transaction history",
	}

	var from, to string
	memberCmd := &cobra.Command{
		Use:   "member <member-id>",
		Short: "Member transactions within a date range, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dateRange(from, to)
			if err != nil {
				return err
			}
			history := c.app.recon.GetTransactionHistory(args[0], start, end, c.app.transactions)
			return c.write(cmd, fixture.TransactionsFromDomain(history))
		},
	}
	memberCmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD")
	memberCmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD")

	historyCmd.AddCommand(memberCmd)
	return historyCmd
}

func (c *cli) summaryCmd() *cobra.Command {
	var from, to string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Income and expense totals over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dateRange(from, to)
			if err != nil {
				return err
			}
			summary := c.app.recon.GetTransactionSummary(c.app.tenantID, start, end, c.app.transactions)
			return c.write(cmd, fixture.TransactionSummaryFromDomain(summary))
		},
	}
	summaryCmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD")
	summaryCmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD")
	return summaryCmd
}

func (c *cli) agingCmd() *cobra.Command {
	agingCmd := &cobra.Command{
		Use:   "aging",
		Short: "Receivable aging",
	}

	var asOfFlag string
	memberCmd := &cobra.Command{
		Use:   "member <member-id>",
		Short: "Split what a member owes into aging buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := dateFlag(asOfFlag)
			if err != nil {
				return err
			}
			aging := c.app.recon.ReconstructMemberAging(c.app.tenantID, args[0], asOf, c.app.transactions)
			return c.write(cmd, fixture.MemberAgingFromDomain(aging))
		},
	}
	memberCmd.Flags().StringVar(&asOfFlag, "as-of", "", "as-of date YYYY-MM-DD (default today)")

	agingCmd.AddCommand(memberCmd)
	return agingCmd
}

func (c *cli) checkCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Ledger consistency checks",
	}

	balancedCmd := &cobra.Command{
		Use:   "balanced",
		Short: "Verify debits equal credits for every transaction's entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := fixture.CheckBalanced(c.app.entries)
			if err := c.write(cmd, result); err != nil {
				return err
			}
			if !result.Balanced {
				return fmt.Errorf("%d transaction(s) unbalanced", len(result.Unbalanced))
			}
			return nil
		},
	}

	checkCmd.AddCommand(balancedCmd)
	return checkCmd
}

func propertyMembers(propertyID string, txns []domain.Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range txns {
		if t.PropertyID == propertyID && t.MemberID != nil {
			seen[*t.MemberID] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func propertyFunds(propertyID string, entries []domain.LedgerEntry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.PropertyID == propertyID && e.FundID != "" {
			seen[e.FundID] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
