package cli

import (
	"log/slog"

	"github.com/picani/sqlitekv/internal/config"
	"github.com/picani/sqlitekv/internal/store"
)

// openStore opens the database named by the global flags, loading the
// optional engine options file first.
func openStore(opts *RootOptions) (*store.Store, error) {
	engineOpts := store.DefaultOptions()

	if opts.Config != "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		engineOpts = cfg.StoreOptions()
		slog.Debug("loaded engine options", "path", opts.Config,
			"journal_mode", engineOpts.JournalMode, "busy_timeout", engineOpts.BusyTimeout)
	}

	st, err := store.OpenWithOptions(opts.Database, engineOpts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
