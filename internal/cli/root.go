package cli

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/notecards/internal/config"
	"github.com/alexanderramin/notecards/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by commands and the board.
type App struct {
	Notes  service.NoteService
	Sync   service.SyncService
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// TerminalWidth returns stdout's width in columns, or 0 when unknown.
	TerminalWidth func() int
}

// Bootstrap builds the App once flags have been applied to the config.
type Bootstrap func(cfg config.Config) (*App, error)

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) terminalWidth() int {
	if a.TerminalWidth == nil {
		return 0
	}
	return a.TerminalWidth()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// cmdEnv carries the lazily bootstrapped App to every subcommand.
type cmdEnv struct {
	cfg  *config.Config
	boot Bootstrap
	app  *App
}

func (e *cmdEnv) start() error {
	if e.app != nil {
		return nil
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	app, err := e.boot(*e.cfg)
	if err != nil {
		return err
	}
	e.app = app
	return nil
}

// NewRootCmd creates the top-level "notecards" command. Flags override cfg
// in place; boot runs after flag parsing, before any subcommand.
func NewRootCmd(cfg *config.Config, boot Bootstrap) *cobra.Command {
	env := &cmdEnv{cfg: cfg, boot: boot}

	root := &cobra.Command{
		Use:           "notecards",
		Short:         "Note cards kept in local storage or the notes API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.app.interactive() {
				return runBoard(env.app)
			}
			return runList(commandContext(cmd), env.app, cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
		},
	}
	config.BindFlags(root.PersistentFlags(), cfg)

	root.AddCommand(
		newListCmd(env),
		newAddCmd(env),
		newDeleteCmd(env),
		newArchiveCmd(env, true),
		newArchiveCmd(env, false),
		newToggleCmd(env),
		newBoardCmd(env),
	)

	return root
}

// loadQuietly syncs the store before a one-shot mutation so the local
// snapshot is not rewritten from an empty store. It reports whether the
// load succeeded; failures are logged.
func loadQuietly(ctx context.Context, app *App) bool {
	if err := app.Sync.Load(ctx, nil); err != nil {
		app.logger().Error("load_failed", "backend", app.Notes.Backend(), "error", err)
		return false
	}
	return true
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
