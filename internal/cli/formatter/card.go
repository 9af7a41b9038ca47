package formatter

import (
	"strings"

	"github.com/alexanderramin/notecards/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ArchivedClass is the marker rendered on archived cards. Together with the
// archive button label it is the only visual sign of the archived state.
const ArchivedClass = "archived"

const (
	minCardWidth     = 24
	defaultCardWidth = 60
)

var (
	cardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)
	cardSelectedBorder = cardBorder.BorderForeground(ColorHeader)
	buttonStyle        = lipgloss.NewStyle().Foreground(ColorFg)
	deleteButtonStyle  = lipgloss.NewStyle().Foreground(ColorRed)
)

// ArchiveLabel is the archive button text for a note in the given state.
func ArchiveLabel(archived bool) string {
	if archived {
		return "Unarchive"
	}
	return "Archive"
}

// RenderCard renders one note as a bordered card. width is the outer width;
// values below the minimum fall back to a default.
func RenderCard(n domain.Note, selected bool, width int) string {
	if width < minCardWidth {
		width = defaultCardWidth
	}
	inner := width - 4 // border + padding

	title := StyleBold.Render(n.Title)
	if n.Archived {
		title = StyleDim.Render(n.Title) + " " + StyleYellow.Render("["+ArchivedClass+"]")
	}

	body := lipgloss.NewStyle().Width(inner).Render(n.Body)
	if n.Archived {
		body = StyleDim.Width(inner).Render(n.Body)
	}

	meta := Dim(CardTimestamp(n))
	if id := n.DisplayID(); id != "" {
		meta += Dim("  #" + id)
	}

	buttons := deleteButtonStyle.Render("[Delete]") + " " + buttonStyle.Render("["+ArchiveLabel(n.Archived)+"]")

	content := strings.Join([]string{title, body, meta, buttons}, "\n")
	style := cardBorder
	if selected {
		style = cardSelectedBorder
	}
	return style.Width(width - 2).Render(content)
}

// RenderCards renders notes in order, one card per note.
func RenderCards(notes []domain.Note, selected int, width int) string {
	cards := make([]string, 0, len(notes))
	for i, n := range notes {
		cards = append(cards, RenderCard(n, i == selected, width))
	}
	return strings.Join(cards, "\n")
}

// CardTimestamp formats CreatedAt for display, falling back to the raw value
// when it cannot be parsed.
func CardTimestamp(n domain.Note) string {
	t := n.Created()
	if t.IsZero() {
		if n.CreatedAt == "" {
			return "unsaved"
		}
		return n.CreatedAt
	}
	return t.Local().Format("Mon, 02 Jan 2006 15:04")
}
