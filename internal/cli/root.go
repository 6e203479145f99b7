package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/matters/internal/config"
	"github.com/idilsaglam/matters/internal/model"
	"github.com/idilsaglam/matters/internal/store/jsonstore"
	"github.com/idilsaglam/matters/internal/store/sqlitestore"
	"github.com/idilsaglam/matters/internal/tui"
	"github.com/idilsaglam/matters/internal/ui"
)

// App carries the root flags and the resolved configuration.
type App struct {
	ConfigPath string
	Backend    string
	Dir        string
	Namespace  string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "matters",
		Short:         "Keep a list of matters, with replies",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  matters

  # Scriptable commands
  matters add "Buy milk"
  matters ls
  matters done 2
  matters reply 2 "got oat milk instead"
  matters rm 3 --yes
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("MATTERS_CONFIG", defaultConfigPath()), "Path to config.yaml")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("MATTERS_BACKEND", ""), "Storage backend (json|sqlite), overrides config")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("MATTERS_DIR", ""), "Data directory, overrides config")
	cmd.PersistentFlags().StringVar(&app.Namespace, "namespace", envOr("MATTERS_NAMESPACE", ""), "Dataset name, overrides config")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newReplyCmd(app))
	cmd.AddCommand(newSearchCmd(app))

	return cmd
}

// configure loads the config file, applies flag overrides and the
// presentation settings.
func (app *App) configure() error {
	cfg := config.NewDefaultConfig()
	if err := config.Read(app.ConfigPath, cfg); err != nil {
		return err
	}
	// Flags win over the file.
	if app.Backend != "" {
		cfg.Storage.Backend = app.Backend
	}
	if app.Dir != "" {
		cfg.Storage.Dir = app.Dir
	}
	if app.Namespace != "" {
		cfg.Storage.Namespace = app.Namespace
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ui.SetTheme(cfg.App.Theme)
	ui.SetMarkdownStyle(cfg.App.MarkdownStyle)
	app.cfg = cfg
	return nil
}

func (app *App) newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: app.cfg.App.LogLevel}))
}

// openStore opens the configured backend. The returned func releases it.
func (app *App) openStore(ctx context.Context) (model.Store, func() error, error) {
	s := app.cfg.Storage
	switch s.Backend {
	case config.BackendSQLite:
		st, err := sqlitestore.Open(ctx, s.Dir, s.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		st, err := jsonstore.New(s.Dir, s.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	}
}

// runTUI owns the terminal, so logs go to a file in the data directory.
func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	st, closeStore, err := app.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	logFile, err := os.OpenFile(filepath.Join(app.cfg.Storage.Dir, "matters.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	list := model.NewList(st, model.WithLogger(app.newLogger(logFile)))
	return tui.Run(ctx, list)
}

// run wraps a one-shot command: open the store, build the views, run fn,
// then flush whatever the store refused and release it.
func (app *App) run(fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closeStore, err := app.openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		logger := app.newLogger(cmd.ErrOrStderr())
		s, err := newSession(ctx, cmd, model.NewList(st, model.WithLogger(logger)))
		if err != nil {
			return err
		}
		defer s.app.Close()

		runErr := fn(cmd, s, args)
		if flushErr := s.list.Flush(ctx); flushErr != nil {
			return errors.Join(runErr, fmt.Errorf("not saved: %w", flushErr))
		}
		return runErr
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "matters", "config.yaml")
}
