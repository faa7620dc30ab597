// Package cli implements edgectl, the operator CLI of an edge node. Every
// command is a thin call through [adapter.AdminAdapter] followed by text or
// JSON rendering of the result.
package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-edge-sync/internal/adapter"
	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// AdapterFactory builds the admin API client once flags are parsed.
// adapter.NewHTTPAdminAdapter satisfies it.
type AdapterFactory func(cfg config.CLIConfig, log *logger.Logger) (adapter.AdminAdapter, error)

// RootOptions holds the global flags shared by all commands.
type RootOptions struct {
	Format string
	Config config.CLIConfig

	adapter adapter.AdminAdapter
	logger  *logger.Logger
}

// NewRootCommand creates the edgectl root command. cfg provides the flag
// defaults loaded from the environment and the config file.
func NewRootCommand(cfg config.CLIConfig, factory AdapterFactory, log *logger.Logger) *cobra.Command {
	opts := &RootOptions{Config: cfg, logger: log}

	cmd := &cobra.Command{
		Use:   "edgectl",
		Short: "Operate the replication engine of an edge node",
		Long: `edgectl talks to the admin API of a running edge node.

It inspects and drives replication per account: sync status, journal,
conflicts and their resolution, bulk pulls of reference data and the
node's connectivity flag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			a, err := factory(opts.Config, opts.logger)
			if err != nil {
				return WrapExitError(ExitUsage, "create admin API client", err)
			}
			opts.adapter = a
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config.HTTPAddress, "address", "a", cfg.HTTPAddress, "admin API address of the edge node")
	cmd.PersistentFlags().DurationVar(&opts.Config.RequestTimeout, "timeout", orDefault(cfg.RequestTimeout, 15*time.Second), "timeout of a single admin API call")
	cmd.PersistentFlags().StringVar(&opts.Config.HashKey, "hash-key", cfg.HashKey, "key signing request bodies")

	cmd.AddCommand(
		newVersionCommand(opts),
		newConnectivityCommand(opts),
		newStatusCommand(opts),
		newStatsCommand(opts),
		newSyncCommand(opts),
		newRetryCommand(opts),
		newJournalCommand(opts),
		newPurgeCommand(opts),
		newConflictsCommand(opts),
		newResolveCommand(opts),
		newPullCommand(opts),
	)

	return cmd
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
