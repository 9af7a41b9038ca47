package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/notecards/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// noteFormFields holds the values bound to the new note form.
type noteFormFields struct {
	title string
	body  string
}

// newNoteFormView builds the "New note" form. Blank fields fail validation
// inline and block submission.
func newNoteFormView(state *SharedState) *wizardView {
	fields := &noteFormFields{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Groceries").
				CharLimit(120).
				Value(&fields.title).
				Validate(requiredField("title")),
			huh.NewText().
				Title("Body").
				Placeholder("What should the card say?").
				Lines(5).
				Value(&fields.body).
				Validate(requiredField("body")),
		),
	).WithTheme(notecardsHuhTheme()).WithShowHelp(false)

	return newWizardView(state, "New note", form, func() tea.Cmd {
		app := state.App
		title, body := fields.title, fields.body
		return func() tea.Msg { return submitNewNote(app, title, body) }
	})
}

// requiredField rejects blank input with the same message the note
// validator uses.
func requiredField(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &domain.ValidationError{Field: field, Message: field + " is required"}
		}
		return nil
	}
}

// submitNewNote creates the note and reports the outcome to the board.
func submitNewNote(app *App, title, body string) tea.Msg {
	note, err := app.Notes.Create(context.Background(), title, body)
	return noteActionMsg{action: "create", id: note.ID, err: err}
}
