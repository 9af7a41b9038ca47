package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/notecards/internal/cli"
	"github.com/alexanderramin/notecards/internal/config"
	"github.com/alexanderramin/notecards/internal/db"
	"github.com/alexanderramin/notecards/internal/logging"
	"github.com/alexanderramin/notecards/internal/persistence"
	"github.com/alexanderramin/notecards/internal/service"
	"github.com/alexanderramin/notecards/internal/store"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	// Filled in by bootstrap once flags are parsed.
	var closeDB func() error
	defer func() {
		if closeDB != nil {
			closeDB()
		}
	}()

	bootstrap := func(cfg config.Config) (*cli.App, error) {
		logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
		slog.SetDefault(logger)

		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		closeDB = database.Close

		kv := persistence.NewSQLiteKV(database)
		mirror := persistence.NewSnapshotMirror(kv, cfg.StorageKey)
		st := store.New(mirror, logger)

		// Wire the adapter for the selected backend
		observer := persistence.NewLogObserver(logger)
		var adapter persistence.Adapter
		switch strings.ToLower(cfg.Backend) {
		case persistence.BackendRemote:
			adapter = persistence.NewRemoteAdapter(cfg.APIBaseURL, cfg.Timeout, observer)
		default:
			adapter = persistence.NewLocalAdapter(mirror, observer)
		}

		useCases := service.NewLogUseCaseObserver(logger)
		logger.Debug("bootstrap", "backend", adapter.Name(), "db", cfg.DBPath, "storage_key", cfg.StorageKey)

		return &cli.App{
			Notes:  service.NewNoteService(adapter, st, useCases),
			Sync:   service.NewSyncService(adapter, st, useCases),
			Logger: logger,
			IsInteractive: func() bool {
				return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
			},
			TerminalWidth: func() int {
				w, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					return 0
				}
				return w
			},
		}, nil
	}

	return cli.NewRootCmd(&cfg, bootstrap).Execute()
}
