package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDelCommand creates the del command.
func NewDelCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "del KEY",
		Short: "Remove a key's association",
		Long: `Remove a key's association.

Deletion is idempotent: removing a key that does not exist succeeds
silently. The stored value is never removed; see the compact command.

Examples:
  sqlitekv del plop --db ./kv.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDel(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runDel(opts *RootOptions, cmd *cobra.Command, key string) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(ctx, key); err != nil {
		return WrapExitError(ExitCommandError, "del failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(nil) // silent in text mode
}
