package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-edge-sync/models"
)

func newConflictsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts ACCOUNT [CONFLICT_ID]",
		Short: "List unresolved conflicts of an account or show one conflict",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				conflict, err := opts.adapter.GetConflict(cmd.Context(), args[0], args[1])
				if err != nil {
					return adapterError("get conflict", err)
				}
				return render(cmd, opts, conflict, textConflict)
			}

			conflicts, err := opts.adapter.GetConflicts(cmd.Context(), args[0])
			if err != nil {
				return adapterError("list conflicts", err)
			}
			return render(cmd, opts, conflicts, textConflicts)
		},
	}
}

func newResolveCommand(opts *RootOptions) *cobra.Command {
	var (
		resolution string
		data       string
		by         string
	)

	cmd := &cobra.Command{
		Use:   "resolve ACCOUNT CONFLICT_ID",
		Short: "Resolve a replay conflict",
		Long: `Resolves a conflict with one of:

  local_wins   apply the offline change to the shared store
  remote_wins  keep the shared store and refresh the local copy
  merged       write --data to the shared store
  manual       write --data to the shared store, bumping the version only
               when --data carries one`,
		Example: `  edgectl resolve store-7 0192c5e0-... --resolution local_wins --by manager@store-7
  edgectl resolve store-7 0192c5e0-... --resolution merged --data '{"total":12.5}' --by ops`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.ResolveRequest{
				AccountID:  args[0],
				ConflictID: args[1],
				Resolution: models.Resolution(resolution),
				ResolvedBy: by,
			}
			if !req.Resolution.Valid() {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid resolution %q", resolution))
			}
			if data != "" {
				rec, err := models.DecodeRecord([]byte(data))
				if err != nil {
					return WrapExitError(ExitUsage, "invalid --data", err)
				}
				req.ResolvedData = rec
			}
			if req.Resolution.RequiresData() && req.ResolvedData == nil {
				return NewExitError(ExitUsage, fmt.Sprintf("resolution %s requires --data", resolution))
			}

			conflict, err := opts.adapter.ResolveConflict(cmd.Context(), req)
			if err != nil {
				return adapterError("resolve conflict", err)
			}
			return render(cmd, opts, conflict, textConflict)
		},
	}

	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "local_wins|remote_wins|merged|manual")
	cmd.Flags().StringVar(&data, "data", "", "JSON object for merged and manual resolutions")
	cmd.Flags().StringVar(&by, "by", "", "who resolved the conflict")
	_ = cmd.MarkFlagRequired("resolution")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newPullCommand(opts *RootOptions) *cobra.Command {
	var (
		storeID string
		tables  []string
		since   string
	)

	cmd := &cobra.Command{
		Use:   "pull ACCOUNT",
		Short: "Refresh local reference tables from the shared store",
		Long: `Copies rows of the given tables (the configured reference tables by
default) from the shared store into the local store. Pulled rows are not
journaled. A failing table does not stop the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.PullRequest{AccountID: args[0], StoreID: storeID, Tables: tables}
			if since != "" {
				t, err := time.Parse(time.RFC3339, since)
				if err != nil {
					return WrapExitError(ExitUsage, "invalid --since", err)
				}
				req.Since = &t
			}

			res, err := opts.adapter.PullData(cmd.Context(), req)
			if err != nil {
				return adapterError("pull data", err)
			}
			return render(cmd, opts, res, textPull)
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "only rows of this store in store-scoped tables")
	cmd.Flags().StringSliceVar(&tables, "table", nil, "tables to pull")
	cmd.Flags().StringVar(&since, "since", "", "only rows updated after this RFC3339 time")

	return cmd
}
