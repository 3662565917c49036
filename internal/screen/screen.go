// Package screen holds the contract between the router and the views it
// stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flagquiz/internal/ui/layout"
)

// Screen is one page of the app. The router keeps a stack of them and only
// the top one receives messages.
type Screen interface {
	// Init runs each time the screen becomes active through a push, a
	// replace or a pop back to the root.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header.
type StatusProvider interface {
	Status() string
}

// Suspender is implemented by screens holding state that must be saved
// before the program quits. A nil command means there is nothing to save.
type Suspender interface {
	Suspend() tea.Cmd
}
