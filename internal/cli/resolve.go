package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/notecards/internal/domain"
)

// resolveNoteID maps a full ID or a unique ID prefix to a note ID.
func resolveNoteID(notes []domain.Note, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("note ID is required")
	}

	for _, n := range notes {
		if n.ID == input {
			return n.ID, nil
		}
	}

	var matches []string
	for _, n := range notes {
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("note %q: %w", input, domain.ErrNoteNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("note ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
