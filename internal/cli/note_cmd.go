package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/notecards/internal/cli/formatter"
	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/alexanderramin/notecards/internal/service"
	"github.com/spf13/cobra"
)

const listCardWidth = 60

func newListCmd(env *cmdEnv) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every note as a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(commandContext(cmd), env.app, cmd.OutOrStdout(), cmd.ErrOrStderr(), table)
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Print a compact table instead of cards")

	return cmd
}

// runList loads the backend and prints the store. A failed load is logged
// and whatever the store holds is printed.
func runList(ctx context.Context, app *App, out, errOut io.Writer, table bool) error {
	var ind service.Indicator
	if app.interactive() {
		ind = formatter.NewSpinner(errOut, "Loading notes")
	}
	if err := app.Sync.Load(ctx, ind); err != nil {
		app.logger().Error("load_failed", "backend", app.Notes.Backend(), "error", err)
	}

	notes := app.Notes.Notes()
	if table {
		fmt.Fprint(out, formatter.FormatNoteList(notes, time.Now()))
		return nil
	}
	if len(notes) == 0 {
		return nil
	}
	fmt.Fprintln(out, formatter.RenderCards(notes, -1, cardWidthFor(app.terminalWidth())))
	return nil
}

func newAddCmd(env *cmdEnv) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			app := env.app

			candidate := domain.Note{Title: title, Body: body}
			if err := candidate.Validate(); err != nil {
				return err
			}
			if !loadQuietly(ctx, app) {
				return nil
			}

			note, err := app.Notes.Create(ctx, title, body)
			if err != nil {
				if domain.IsValidation(err) {
					return err
				}
				app.logger().Error("note_action_failed", "action", "create", "error", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.Success("Created note"), formatter.Bold(note.Title), formatter.TruncID(note.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&body, "body", "", "Note body")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

// noteAction loads the store, resolves the ID argument and runs fn. Resolve
// errors are returned; backend failures are logged and dropped.
func noteAction(env *cmdEnv, action string, fn func(ctx context.Context, app *App, id string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		app := env.app
		if !loadQuietly(ctx, app) {
			return nil
		}

		id, err := resolveNoteID(app.Notes.Notes(), args[0])
		if err != nil {
			return err
		}

		msg, err := fn(ctx, app, id)
		if err != nil {
			if errors.Is(err, domain.ErrNoteNotFound) {
				return err
			}
			app.logger().Error("note_action_failed", "action", action, "id", id, "error", err)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(msg))
		return nil
	}
}

func newDeleteCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: noteAction(env, "delete", func(ctx context.Context, app *App, id string) (string, error) {
			if err := app.Notes.Delete(ctx, id); err != nil {
				return "", err
			}
			return "Deleted note " + shortID(id), nil
		}),
	}
}

func newArchiveCmd(env *cmdEnv, archived bool) *cobra.Command {
	use, short, verb := "archive ID", "Archive a note", "Archived"
	if !archived {
		use, short, verb = "unarchive ID", "Unarchive a note", "Unarchived"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: noteAction(env, "set-archived", func(ctx context.Context, app *App, id string) (string, error) {
			if err := app.Notes.SetArchived(ctx, id, archived); err != nil {
				return "", err
			}
			return verb + " note " + shortID(id), nil
		}),
	}
}

func newToggleCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip the archived state of a note",
		Args:  cobra.ExactArgs(1),
		RunE: noteAction(env, "toggle-archive", func(ctx context.Context, app *App, id string) (string, error) {
			note, err := app.Notes.ToggleArchive(ctx, id)
			if err != nil {
				return "", err
			}
			verb := "Unarchived"
			if note.Archived {
				verb = "Archived"
			}
			return verb + " note " + shortID(id), nil
		}),
	}
}

func newBoardCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive card board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(env.app)
		},
	}
}

func shortID(id string) string {
	n := domain.Note{ID: id}
	return n.DisplayID()
}
