package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/transakt-dev/transakt/internal/buildinfo"
)

// NewRootCommand creates the transakt command.
func NewRootCommand() *cobra.Command {
	var opts replayOptions

	rootCmd := &cobra.Command{
		Use:     "transakt <transactions.csv>",
		Short:   "Replay a transaction history and print client balances",
		Long:    "Replays deposits, withdrawals, disputes, resolves and chargebacks in file order\nand writes the resulting client accounts as CSV to stdout.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.ExactArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level on stderr (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&opts.skippedPath, "skipped", "", "write ignored records to this CSV file")

	return rootCmd
}
