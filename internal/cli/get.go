package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picani/sqlitekv/internal/store"
)

// GetResult is the JSON payload for a successful get.
type GetResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Retrieve the value stored under a key",
		Long: `Retrieve the value stored under a key.

A missing key is a normal outcome, not a storage failure: the command
reports it and exits with code 1. Storage failures exit with code 2.

Examples:
  sqlitekv get plop --db ./kv.db
  sqlitekv get plop --db ./kv.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runGet(opts *RootOptions, cmd *cobra.Command, key string) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	value, err := st.Get(ctx, key)
	if store.IsNotFound(err) {
		if err := out.Error("NOT_FOUND", fmt.Sprintf("key %q not found", key)); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		// Output already emitted; surface only the exit code.
		return &ExitError{Code: ExitNotFound}
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "get failed", err)
	}

	if opts.Format == "json" {
		return out.Success(GetResult{Key: key, Value: value})
	}
	return out.Success(value)
}
