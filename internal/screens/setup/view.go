package setup

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/ui/components"
	"github.com/abhisek/fitplan/internal/ui/layout"
	"github.com/abhisek/fitplan/internal/ui/theme"
)

const detailWidth = 34

func (s *SetupScreen) View(width, height int) string {
	mainWidth := width - 2
	showSide := s.showDetail && !layout.IsCompactWidth(width)
	if showSide {
		mainWidth -= detailWidth + 1
	}

	sel := s.selections.Current()
	var sections []string

	inputs := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth/2).Render(s.name.View()),
		lipgloss.NewStyle().Width(mainWidth/2).Render(s.age.View()),
	)
	sections = append(sections, inputs, "", s.progress(sel, mainWidth))

	if status := s.status(); status != "" {
		sections = append(sections, theme.Hint.Render(status))
	}

	for _, cat := range fitness.Categories {
		sections = append(sections, "", s.groups[cat].View(sel, mainWidth))
		if cat == fitness.CategoryEquipment {
			sections = append(sections, s.custom.View())
		}
	}

	sections = append(sections, "")
	if s.warning != "" {
		sections = append(sections, components.Banner(components.BannerWarning, s.warning, mainWidth))
	}
	if s.errMsg != "" {
		sections = append(sections, components.Banner(components.BannerError, s.errMsg, mainWidth))
	}
	label := "Create my plan"
	if s.submitting {
		label = "Creating profile..."
	}
	sections = append(sections, components.NewButton(label, "Ctrl+S", !s.submitting).View())

	main := lipgloss.NewStyle().Width(mainWidth).PaddingLeft(1).Render(strings.Join(sections, "\n"))
	if !s.showDetail {
		return main
	}
	detail := components.Card(s.detail(), detailWidth, true)
	if showSide {
		return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, detail, main)
}

func (s *SetupScreen) status() string {
	switch {
	case s.submitting:
		return ""
	case s.loading, s.refresher != nil && s.refresher.Busy():
		return "Updating options..."
	case s.catalog.Empty() && s.currentAge <= 0:
		return "Enter your age to see tailored options."
	case s.stale:
		return "Offline: options may be out of date."
	}
	return ""
}

// progress shows how many required answers are filled in.
func (s *SetupScreen) progress(sel fitness.SelectionSet, width int) string {
	done := 0
	if strings.TrimSpace(s.name.Value()) != "" {
		done++
	}
	if age, err := s.age.NumericValue(); err == nil && age > 0 {
		done++
	}
	if sel.Count(fitness.CategoryGoal) > 0 {
		done++
	}
	if sel.Count(fitness.CategoryWorkout) == 1 {
		done++
	}
	if sel.Count(fitness.CategoryLevel) == 1 {
		done++
	}
	return components.NewProgressBar("Profile", float64(done)/5, true, min(width, 60)).View()
}

// detail describes the option under the cursor.
func (s *SetupScreen) detail() string {
	cat, ok := s.focus.category()
	if !ok {
		return theme.Hint.Render("Move to an option to see details.")
	}
	o, ok := s.groups[cat].Current()
	if !ok {
		return theme.Hint.Render("No option selected.")
	}

	lines := []string{theme.Section.Render(o.Name)}
	if o.Description != "" {
		lines = append(lines, theme.Body.Render(o.Description))
	}
	if note := o.Note(); note != "" {
		lines = append(lines, "", theme.Selected.Render(o.NoteLabel()), theme.Body.Render(note))
	}
	if o.Custom {
		lines = append(lines, "", theme.Hint.Render("Added by you."))
	}
	return strings.Join(lines, "\n")
}
