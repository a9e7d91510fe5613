package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/ui/theme"
)

// ChipToggledMsg is emitted when the user toggles the chip under the cursor.
type ChipToggledMsg struct {
	Category fitness.Category
	OptionID string
}

// ChipGroup is a row of selectable option chips for one category.
type ChipGroup struct {
	Category fitness.Category
	Options  []fitness.Option
	Cursor   int
	Focused  bool
}

// NewChipGroup creates a chip group for cat.
func NewChipGroup(cat fitness.Category, opts []fitness.Option) ChipGroup {
	return ChipGroup{Category: cat, Options: opts}
}

// SetOptions replaces the chips, keeping the cursor on the same option
// when it is still listed.
func (g *ChipGroup) SetOptions(opts []fitness.Option) {
	var current string
	if o, ok := g.Current(); ok {
		current = o.ID
	}
	g.Options = opts
	g.Cursor = 0
	for i, o := range opts {
		if o.ID == current {
			g.Cursor = i
			break
		}
	}
}

// Current returns the option under the cursor.
func (g ChipGroup) Current() (fitness.Option, bool) {
	if g.Cursor < 0 || g.Cursor >= len(g.Options) {
		return fitness.Option{}, false
	}
	return g.Options[g.Cursor], true
}

// Update moves the cursor and emits ChipToggledMsg on space or enter.
func (g ChipGroup) Update(msg tea.Msg) (ChipGroup, tea.Cmd) {
	if !g.Focused || len(g.Options) == 0 {
		return g, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if g.Cursor > 0 {
			g.Cursor--
		}
	case "right", "l":
		if g.Cursor < len(g.Options)-1 {
			g.Cursor++
		}
	case "space", "enter":
		o := g.Options[g.Cursor]
		cat := g.Category
		return g, func() tea.Msg {
			return ChipToggledMsg{Category: cat, OptionID: o.ID}
		}
	}
	return g, nil
}

// View renders the chips, wrapping to width. Chips in sel are highlighted.
func (g ChipGroup) View(sel fitness.SelectionSet, width int) string {
	header := theme.Section.Render(g.Category.Label())
	if g.Category.SingleSelect() {
		header += theme.Hint.Render("  (choose one)")
	}
	if len(g.Options) == 0 {
		return header + "\n" + theme.Hint.Render("No options available.")
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, o := range g.Options {
		label := o.Name
		if o.Icon != "" {
			label = o.Icon + " " + label
		}
		style := theme.ChipOff
		if sel.Has(g.Category, o.ID) {
			style = theme.ChipOn
		}
		if g.Focused && i == g.Cursor {
			style = style.Underline(true)
			label = "▸" + label
		}
		chip := style.Render(label)
		w := lipgloss.Width(chip) + 1
		if rowWidth+w > width && len(row) > 0 {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, " "))
	return header + "\n" + strings.Join(rows, "\n")
}
