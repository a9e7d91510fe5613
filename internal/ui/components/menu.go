package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown dimmed and
// skipped by the cursor.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor wraps around.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	return m
}

// step moves the cursor by delta to the next enabled item.
func (m *Menu) step(delta int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		next := ((m.Selected+delta*i)%n + n) % n
		if !m.Items[next].Disabled {
			m.Selected = next
			return
		}
	}
}

// Current returns the highlighted item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
			if item.Hint != "" {
				b.WriteString("  " + hint.Render(item.Hint))
			}
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
