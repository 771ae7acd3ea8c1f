package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// CompactResult is the JSON payload for a compact run.
type CompactResult struct {
	Removed int64 `json:"removed"`
}

// NewCompactCommand creates the compact command.
func NewCompactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Delete value records no key references",
		Long: `Delete value records no key references.

Overwrites and deletes leave orphaned value records behind; put and del
never reclaim them. Compact is the explicit garbage-collection pass that
does. Running it is always safe: referenced values are never touched.

Examples:
  sqlitekv compact --db ./kv.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(rootOpts, cmd)
		},
	}

	return cmd
}

func runCompact(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.Compact(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "compact failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(CompactResult{Removed: removed})
	}
	return out.Success(fmt.Sprintf("Removed %d orphaned value(s)", removed))
}
