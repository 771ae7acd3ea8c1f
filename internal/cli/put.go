package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewPutCommand creates the put command.
func NewPutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Associate a value with a key",
		Long: `Associate a value with a key.

If the key already exists it is repointed at the new value. Values are
deduplicated: keys holding the same payload share one stored copy.

Examples:
  sqlitekv put plop 42 --db ./kv.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runPut(opts *RootOptions, cmd *cobra.Command, key, value string) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(ctx, key, value); err != nil {
		return WrapExitError(ExitCommandError, "put failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(nil) // silent in text mode
}
