package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picani/sqlitekv/internal/store"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show key, value, and orphan counts",
		Long: `Show key, value, and orphan counts.

Orphans are value records no key references; they accumulate from
overwrites and deletes until compact is run.

Examples:
  sqlitekv stats --db ./kv.db
  sqlitekv stats --db ./kv.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "stats failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(stats)
	}
	return out.Success(formatStats(stats))
}

// formatStats renders the text form of the stats table.
func formatStats(s store.Stats) string {
	return fmt.Sprintf("Keys:    %d\nValues:  %d\nOrphans: %d", s.Keys, s.Values, s.Orphans)
}
