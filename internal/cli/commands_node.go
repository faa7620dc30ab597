package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build of the edge node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := opts.adapter.Version(cmd.Context())
			if err != nil {
				return adapterError("get version", err)
			}
			return render(cmd, opts, info, textVersion)
		},
	}
}

func newConnectivityCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connectivity [online|offline]",
		Short: "Show or override whether the node routes to the shared store",
		Long: `Without an argument, prints the node's connectivity flag.

With online or offline, overrides the flag. Connectivity monitoring
normally drives it; forcing offline makes every write go to the local
store and the journal.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"online", "offline"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				status, err := opts.adapter.Connectivity(cmd.Context())
				if err != nil {
					return adapterError("get connectivity", err)
				}
				return render(cmd, opts, status, textConnectivity)
			}

			var online bool
			switch strings.ToLower(args[0]) {
			case "online":
				online = true
			case "offline":
			default:
				return NewExitError(ExitUsage, fmt.Sprintf("invalid connectivity %q: must be online or offline", args[0]))
			}

			status, err := opts.adapter.SetOnlineStatus(cmd.Context(), online)
			if err != nil {
				return adapterError("set connectivity", err)
			}
			return render(cmd, opts, status, textConnectivity)
		},
	}
	return cmd
}
