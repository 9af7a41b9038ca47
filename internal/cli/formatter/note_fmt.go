package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/notecards/internal/domain"
)

const listBodyWidth = 40

// StatePill renders the archived state of a note.
func StatePill(archived bool) string {
	if archived {
		return StyleDim.Render("✖ " + ArchivedClass)
	}
	return StyleGreen.Render("● active")
}

// FormatNoteList renders notes as a table for non-interactive output.
func FormatNoteList(notes []domain.Note, now time.Time) string {
	if len(notes) == 0 {
		return Dim("No notes yet. Add one with `notecards add`.") + "\n"
	}

	rows := make([][]string, 0, len(notes))
	active := 0
	for _, n := range notes {
		if !n.Archived {
			active++
		}
		created := Dim("unsaved")
		if t := n.Created(); !t.IsZero() {
			created = Dim(HumanTimestampFrom(t, now))
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			Bold(Truncate(n.Title, 30)),
			Truncate(firstLine(n.Body), listBodyWidth),
			StatePill(n.Archived),
			created,
		})
	}

	var b strings.Builder
	b.WriteString(Header("Notes"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"ID", "TITLE", "BODY", "STATE", "CREATED"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%s, %d archived", pluralNotes(len(notes)), len(notes)-active)))
	b.WriteString("\n")
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func pluralNotes(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
