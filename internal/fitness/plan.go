package fitness

import (
	"fmt"
	"strings"
	"time"
)

// WorkoutPlan is a multi-week plan owned by the backend.
type WorkoutPlan struct {
	ID            int64    `json:"id,omitempty"`
	UserProfileID int64    `json:"user_profile_id,omitempty"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	PlanData      PlanData `json:"plan_data"`
}

// PlanData holds the plan's weeks.
type PlanData struct {
	Weeks []Week `json:"weeks"`
}

// Week is one tab of the plan.
type Week struct {
	WeekNumber int   `json:"week_number"`
	Days       []Day `json:"days"`
}

// Day is one accordion entry within a week.
type Day struct {
	DayNumber int        `json:"day_number"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// IsRest reports whether the day has no exercises.
func (d Day) IsRest() bool { return len(d.Exercises) == 0 }

// Title is the accordion heading for the day.
func (d Day) Title() string {
	if d.IsRest() {
		return fmt.Sprintf("Day %d: Rest Day", d.DayNumber)
	}
	if d.Focus == "" {
		return fmt.Sprintf("Day %d", d.DayNumber)
	}
	return fmt.Sprintf("Day %d: %s", d.DayNumber, d.Focus)
}

// Exercise is a single movement within a day.
type Exercise struct {
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	Sets         int      `json:"sets,omitempty"`
	Reps         string   `json:"reps,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// Volume describes how much of the exercise to do, e.g. "3 sets x 12 reps"
// or "30 seconds".
func (e Exercise) Volume() string {
	var parts []string
	switch {
	case e.Sets > 0 && e.Reps != "":
		parts = append(parts, fmt.Sprintf("%d sets x %s reps", e.Sets, e.Reps))
	case e.Sets > 0:
		parts = append(parts, fmt.Sprintf("%d sets", e.Sets))
	case e.Reps != "":
		parts = append(parts, e.Reps+" reps")
	}
	if e.Duration != "" {
		parts = append(parts, e.Duration)
	}
	return strings.Join(parts, ", ")
}

// Week returns the week with the given number.
func (p *WorkoutPlan) Week(number int) (Week, bool) {
	for _, w := range p.PlanData.Weeks {
		if w.WeekNumber == number {
			return w, true
		}
	}
	return Week{}, false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC3339 timestamps as well as the naive ISO form the
// backend emits.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DateRange formats the plan's start and end dates for display. Dates that
// cannot be parsed are shown verbatim.
func (p *WorkoutPlan) DateRange() string {
	return formatDate(p.StartDate) + " - " + formatDate(p.EndDate)
}

func formatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
