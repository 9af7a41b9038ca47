package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

// CardWidth is the outer card width for the current terminal.
func (s *SharedState) CardWidth() int {
	return cardWidthFor(s.Width)
}

// cardWidthFor fits cards to a terminal termWidth columns wide. Unknown
// widths get the default.
func cardWidthFor(termWidth int) int {
	const maxCardWidth = 72
	if termWidth <= 0 {
		return listCardWidth
	}
	return min(termWidth-2, maxCardWidth)
}
