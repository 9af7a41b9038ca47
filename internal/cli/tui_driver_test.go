package cli

import (
	"strings"
	"testing"

	"github.com/alexanderramin/notecards/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals
// (view stack, board cursor) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init,
// which loads the store synchronously from the in-memory DB.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view, or -1 for an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Board returns the board view at the bottom of the stack.
func (d *TestDriver) Board() *boardView {
	return d.appModel().viewStack[0].(*boardView)
}

// IsQuitting reports whether the model or the runtime signalled quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CardCount counts rendered cards by their delete button.
func (d *TestDriver) CardCount() int {
	return strings.Count(d.PlainView(), "[Delete]")
}
