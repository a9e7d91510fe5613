package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/ui/theme"
)

// Button is a call to action. Screens handle the shortcut key themselves;
// the button only shows it.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a button. key may be empty.
func NewButton(label, key string, active bool) Button {
	return Button{Label: label, Key: key, Active: active}
}

// View renders the button, dimmed when inactive.
func (b Button) View() string {
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	out := style.Render("▸ " + b.Label)
	if b.Key != "" && b.Active {
		out += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("["+b.Key+"]")
	}
	return out
}
