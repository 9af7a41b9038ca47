package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/notecards/internal/cli/formatter"
	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Archive key.Binding
	New     key.Binding
	Reload  key.Binding
}

var boardKeys = boardKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Archive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive/unarchive")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// loadIndicator is the board's sync indicator. It counts overlapping loads:
// visible from the first Show until the matching last Hide. The sync
// service drives it from load goroutines; the board reads it while rendering.
type loadIndicator struct {
	inFlight atomic.Int32
}

func (l *loadIndicator) Show()         { l.inFlight.Add(1) }
func (l *loadIndicator) Hide()         { l.inFlight.Add(-1) }
func (l *loadIndicator) Visible() bool { return l.inFlight.Load() > 0 }

// heldIndicator hands Load an indicator that is already showing.
type heldIndicator struct{ ind *loadIndicator }

func (heldIndicator) Show()   {}
func (h heldIndicator) Hide() { h.ind.Hide() }

// boardView renders one card per store note in arrival order.
type boardView struct {
	state   *SharedState
	cursor  int
	spinner spinner.Model
	ind     *loadIndicator
	notice  string
}

func newBoardView(state *SharedState) *boardView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &boardView{
		state:   state,
		spinner: sp,
		ind:     &loadIndicator{},
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.reload()
}

// reload raises the indicator before the spinner's first tick is scheduled,
// so the tick chain sees a load in flight; the load itself only lowers it.
func (v *boardView) reload() tea.Cmd {
	app := v.state.App
	v.ind.Show()
	held := heldIndicator{v.ind}
	load := func() tea.Msg {
		return notesLoadedMsg{err: app.Sync.Load(context.Background(), held)}
	}
	return tea.Batch(load, v.spinner.Tick)
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, domain.ErrStaleLoad) {
			v.state.App.logger().Error("load_failed", "error", msg.err)
		}
		v.clampCursor()
		return v, nil

	case noteActionMsg:
		if msg.err != nil {
			v.state.App.logger().Error("note_action_failed", "action", msg.action, "id", msg.id, "error", msg.err)
			return v, nil
		}
		v.notice = actionNotice(msg)
		if msg.action == "create" {
			v.cursor = len(v.notes()) - 1
		}
		v.clampCursor()
		return v, nil

	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case spinner.TickMsg:
		if !v.ind.Visible() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := v.notes()
	switch {
	case key.Matches(msg, boardKeys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, boardKeys.Down):
		if v.cursor < len(notes)-1 {
			v.cursor++
		}
	case key.Matches(msg, boardKeys.Delete):
		if n, ok := v.selected(notes); ok {
			return v, deleteNoteCmd(v.state.App, n.ID)
		}
	case key.Matches(msg, boardKeys.Archive):
		if n, ok := v.selected(notes); ok {
			return v, toggleArchiveCmd(v.state.App, n.ID)
		}
	case key.Matches(msg, boardKeys.New):
		v.notice = ""
		return v, pushView(newNoteFormView(v.state))
	case key.Matches(msg, boardKeys.Reload):
		v.notice = ""
		return v, v.reload()
	}
	return v, nil
}

func deleteNoteCmd(app *App, id string) tea.Cmd {
	return func() tea.Msg {
		err := app.Notes.Delete(context.Background(), id)
		return noteActionMsg{action: "delete", id: id, err: err}
	}
}

func toggleArchiveCmd(app *App, id string) tea.Cmd {
	return func() tea.Msg {
		note, err := app.Notes.ToggleArchive(context.Background(), id)
		action := "unarchive"
		if note.Archived {
			action = "archive"
		}
		return noteActionMsg{action: action, id: id, err: err}
	}
}

func actionNotice(msg noteActionMsg) string {
	switch msg.action {
	case "create":
		return "Note created."
	case "delete":
		return "Note deleted."
	case "archive":
		return "Note archived."
	case "unarchive":
		return "Note unarchived."
	}
	return ""
}

func (v *boardView) notes() []domain.Note {
	return v.state.App.Notes.Notes()
}

func (v *boardView) selected(notes []domain.Note) (domain.Note, bool) {
	if v.cursor < 0 || v.cursor >= len(notes) {
		return domain.Note{}, false
	}
	return notes[v.cursor], true
}

func (v *boardView) clampCursor() {
	n := len(v.notes())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *boardView) View() string {
	var b strings.Builder

	if v.ind.Visible() {
		b.WriteString(v.spinner.View() + " " + formatter.Dim("Loading notes…") + "\n")
	} else if v.notice != "" {
		b.WriteString(formatter.Success(v.notice) + "\n")
	}

	notes := v.notes()
	if len(notes) == 0 {
		if !v.ind.Visible() {
			b.WriteString(formatter.RenderBox("", formatter.Dim("No notes yet. Press n to write one.")) + "\n")
		}
		return b.String()
	}

	b.WriteString(v.renderWindow(notes))
	return b.String()
}

// renderWindow renders as many cards as fit in the content area, starting
// early enough that the selected card is visible.
func (v *boardView) renderWindow(notes []domain.Note) string {
	width := v.state.CardWidth()
	cards := make([]string, len(notes))
	for i, n := range notes {
		cards[i] = formatter.RenderCard(n, i == v.cursor, width)
	}

	budget := v.state.ContentHeight() - 2
	if v.state.Height <= 0 {
		return strings.Join(cards, "\n") + "\n"
	}

	start := 0
	for start < v.cursor && heightOf(cards[start:v.cursor+1]) > budget {
		start++
	}
	end := start + 1
	for end < len(cards) && heightOf(cards[start:end+1]) <= budget {
		end++
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("↑ %d more", start)) + "\n")
	}
	b.WriteString(strings.Join(cards[start:end], "\n") + "\n")
	if rest := len(cards) - end; rest > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("↓ %d more", rest)) + "\n")
	}
	return b.String()
}

func heightOf(cards []string) int {
	h := 0
	for _, c := range cards {
		h += lipgloss.Height(c)
	}
	return h
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "Board" }
func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		boardKeys.Up, boardKeys.Down, boardKeys.Delete,
		boardKeys.Archive, boardKeys.New, boardKeys.Reload,
	}
}
