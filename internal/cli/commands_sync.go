package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-edge-sync/models"
)

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status ACCOUNT",
		Short: "Show the sync status of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := opts.adapter.GetSyncStatus(cmd.Context(), args[0])
			if err != nil {
				return adapterError("get sync status", err)
			}
			return render(cmd, opts, status, textStatus)
		},
	}
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats ACCOUNT",
		Short: "Show journal statistics of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.adapter.GetStats(cmd.Context(), args[0])
			if err != nil {
				return adapterError("get stats", err)
			}
			return render(cmd, opts, stats, textStats)
		},
	}
}

func newSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync ACCOUNT",
		Short: "Replay pending journal entries of an account now",
		Long: `Runs one sync cycle: every pending entry of the account is replayed
against the shared store in creation order. Rejected entries become
conflicts; transient failures are left for "edgectl retry".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := opts.adapter.TriggerSync(cmd.Context(), args[0])
			if err != nil {
				return adapterError("trigger sync", err)
			}
			return render(cmd, opts, summary, textSummary)
		},
	}
}

func newRetryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry ACCOUNT",
		Short: "Reset failed entries of an account to pending and sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := opts.adapter.RetryFailed(cmd.Context(), args[0])
			if err != nil {
				return adapterError("retry failed entries", err)
			}
			return render(cmd, opts, summary, textSummary)
		},
	}
}

type journalOptions struct {
	statuses []string
	table    string
	newest   bool
	limit    int
	offset   int
}

func newJournalCommand(opts *RootOptions) *cobra.Command {
	jo := &journalOptions{}

	cmd := &cobra.Command{
		Use:   "journal ACCOUNT",
		Short: "List mutation journal entries of an account",
		Example: `  edgectl journal store-7 --status failed,conflict
  edgectl journal store-7 --table orders --newest --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.JournalFilter{
				AccountID: args[0],
				TableName: jo.table,
				Order:     models.OrderOldestFirst,
				Limit:     jo.limit,
				Offset:    jo.offset,
			}
			if jo.newest {
				filter.Order = models.OrderNewestFirst
			}
			for _, s := range jo.statuses {
				status := models.JournalStatus(s)
				if !status.Valid() {
					return NewExitError(ExitUsage, "invalid status "+s)
				}
				filter.Statuses = append(filter.Statuses, status)
			}

			entries, err := opts.adapter.ListJournal(cmd.Context(), filter)
			if err != nil {
				return adapterError("list journal", err)
			}
			return render(cmd, opts, entries, textJournal)
		},
	}

	cmd.Flags().StringSliceVar(&jo.statuses, "status", nil, "only entries in these statuses")
	cmd.Flags().StringVar(&jo.table, "table", "", "only entries of this table")
	cmd.Flags().BoolVar(&jo.newest, "newest", false, "newest entries first")
	cmd.Flags().IntVar(&jo.limit, "limit", 50, "maximum number of entries")
	cmd.Flags().IntVar(&jo.offset, "offset", 0, "entries to skip")

	return cmd
}

func newPurgeCommand(opts *RootOptions) *cobra.Command {
	var (
		before    string
		olderThan time.Duration
	)

	cmd := &cobra.Command{
		Use:   "purge ACCOUNT",
		Short: "Delete synced journal entries of an account",
		Long: `Deletes synced entries older than --before (RFC3339) or --older-than.
Entries referenced by a conflict are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, err := purgeCutoff(before, olderThan, time.Now())
			if err != nil {
				return err
			}

			res, err := opts.adapter.ClearSyncedEntries(cmd.Context(), args[0], cutoff)
			if err != nil {
				return adapterError("purge synced entries", err)
			}
			return render(cmd, opts, res, textPurge)
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "RFC3339 cutoff")
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "cutoff relative to now, e.g. 168h")
	cmd.MarkFlagsMutuallyExclusive("before", "older-than")
	cmd.MarkFlagsOneRequired("before", "older-than")

	return cmd
}

func purgeCutoff(before string, olderThan time.Duration, now time.Time) (time.Time, error) {
	if before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			return time.Time{}, WrapExitError(ExitUsage, "invalid --before", err)
		}
		return t, nil
	}
	if olderThan <= 0 {
		return time.Time{}, NewExitError(ExitUsage, "--older-than must be positive")
	}
	return now.Add(-olderThan), nil
}
