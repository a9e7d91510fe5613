package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fitplan/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Disposable is implemented by screens that own background work. The
// router calls Dispose when the screen leaves the stack.
type Disposable interface {
	Dispose()
}

// InputCapturer is implemented by screens that are editing text, so global
// single-key shortcuts must not fire.
type InputCapturer interface {
	CapturingInput() bool
}

// StatusProvider is implemented by screens that show a status string on
// the right of the header.
type StatusProvider interface {
	Status() string
}
