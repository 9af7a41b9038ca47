package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to re-read the store.
type refreshViewMsg struct{}

// wizardCompleteMsg is sent when a form completes or is cancelled.
// The appModel pops the form, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// Board messages, broadcast to every view so the board keeps receiving
// results while a form is on top of it.

// notesLoadedMsg reports the end of a sync load.
type notesLoadedMsg struct {
	err error
}

// noteActionMsg reports the outcome of a create, delete or archive action.
type noteActionMsg struct {
	action string
	id     string
	err    error
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}
