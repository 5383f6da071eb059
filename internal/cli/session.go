package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/todos/internal/config"
	"github.com/roach88/todos/internal/store"
	"github.com/roach88/todos/internal/todo"
)

// session is one command's view of the todo list: the resolved config, the
// open slot, and the store hydrated from it.
type session struct {
	cfg    *config.Config
	slot   *store.Store
	todos  *todo.Store
	logger *slog.Logger
}

// openSession resolves config, opens the database and hydrates the store.
// The caller must Close the session.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeConfig, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())

	if cfg.Database != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
			return nil, WrapExitError(ExitCommandError, CodeStorage, "failed to create database directory", err)
		}
	}

	slot, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, CodeStorage, "failed to open database", err)
	}
	logger.Debug("opened slot", "db", cfg.Database, "key", cfg.Key, "config", cfg.Source)

	todos := todo.New(cmd.Context(), slot,
		todo.WithKey(cfg.Key),
		todo.WithLogger(logger),
	)

	return &session{
		cfg:    cfg,
		slot:   slot,
		todos:  todos,
		logger: logger,
	}, nil
}

// Close releases the database.
func (s *session) Close() error {
	return s.slot.Close()
}
