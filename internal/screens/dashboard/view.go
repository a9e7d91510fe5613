package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/planview"
	"github.com/abhisek/fitplan/internal/ui/components"
	"github.com/abhisek/fitplan/internal/ui/theme"
)

func (d *DashboardScreen) View(width, height int) string {
	var sections []string
	if d.session != nil {
		sections = append(sections, d.renderProfile(), "")
	}

	switch d.viewer.State() {
	case planview.StateIdle:
		sections = append(sections, theme.Hint.Render("Loading your profile..."))
	case planview.StateLoading:
		msg := "Loading your workout plan..."
		if d.viewer.Generating() {
			msg = "Generating your workout plan. This can take a moment..."
		}
		sections = append(sections, theme.Hint.Render(msg))
	case planview.StateNotFound:
		sections = append(sections,
			theme.Body.Render("You don't have a workout plan yet."),
			"",
			components.NewButton("Generate Plan", "g", true).View(),
		)
	case planview.StateFailed:
		fallback := msgPlanGetFailed
		if d.lastGenerate {
			fallback = msgPlanGenFailed
		}
		sections = append(sections,
			components.Banner(components.BannerError, api.UserMessage(d.viewer.Err(), fallback), width-2),
			"",
			theme.Hint.Render("Press r to retry or g to generate a new plan."),
		)
	case planview.StateLoaded:
		sections = append(sections, d.renderPlan(width)...)
	}

	if d.notice != "" {
		kind := components.BannerInfo
		if d.noticeErr {
			kind = components.BannerError
		}
		sections = append(sections, "", components.Banner(kind, d.notice, width-2))
	}

	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(sections, "\n"))
}

func (d *DashboardScreen) renderProfile() string {
	p := d.session.Profile
	parts := []string{theme.Section.Render(p.Name)}
	if p.FitnessGoal != "" {
		parts = append(parts, p.FitnessGoal)
	}
	if p.ExperienceLevel != "" {
		parts = append(parts, p.ExperienceLevel)
	}
	if len(p.WorkoutTypes) > 0 {
		parts = append(parts, strings.Join(p.WorkoutTypes, ", "))
	}
	return strings.Join(parts, theme.Hint.Render("  ·  "))
}

func (d *DashboardScreen) renderPlan(width int) []string {
	plan := d.viewer.Plan()
	out := []string{theme.Hint.Render(plan.DateRange())}

	weeks := d.viewer.Weeks()
	if len(weeks) == 0 {
		return append(out, theme.Hint.Render("This plan has no weeks."))
	}
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = fmt.Sprintf("Week %d", w.WeekNumber)
	}
	out = append(out, "", components.Tabs(labels, d.viewer.WeekIndex()), "")

	week, _ := d.viewer.CurrentWeek()
	for i, day := range week.Days {
		out = append(out, d.renderDay(i, day, width))
	}
	return out
}

func (d *DashboardScreen) renderDay(i int, day fitness.Day, width int) string {
	marker := "▸ "
	if d.viewer.IsOpen(i) {
		marker = "▾ "
	}
	title := marker + day.Title()
	if i == d.viewer.DayCursor() {
		title = theme.Selected.Render(title)
	} else {
		title = theme.Unselected.Render(title)
	}
	if !d.viewer.IsOpen(i) {
		return title
	}

	if day.IsRest() {
		rest := lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(planview.RestDayText)
		return title + "\n" + lipgloss.NewStyle().PaddingLeft(4).Render(rest)
	}
	body := lipgloss.NewStyle().
		PaddingLeft(4).
		Width(max(width-4, 20)).
		Foreground(theme.Text).
		Render(strings.Join(planview.DayLines(day), "\n"))
	return title + "\n" + body
}
