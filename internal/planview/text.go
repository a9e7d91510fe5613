package planview

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/fitplan/internal/fitness"
)

// RestDayText is shown in place of an exercise list on rest days.
const RestDayText = "Rest Day: take time to recover. Light stretching or a walk is fine."

// WriteText renders the whole plan as plain text.
func WriteText(w io.Writer, plan *fitness.WorkoutPlan) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Workout Plan (%s)\n", plan.DateRange())
	for _, week := range plan.PlanData.Weeks {
		fmt.Fprintf(&b, "\nWeek %d\n", week.WeekNumber)
		for _, day := range week.Days {
			fmt.Fprintf(&b, "  %s\n", day.Title())
			for _, line := range DayLines(day) {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DayLines renders one day's body, one line per entry. A rest day yields
// the rest affordance rather than an empty list.
func DayLines(day fitness.Day) []string {
	if day.IsRest() {
		return []string{RestDayText}
	}
	var lines []string
	for i, ex := range day.Exercises {
		head := fmt.Sprintf("%d. %s", i+1, ex.Name)
		if v := ex.Volume(); v != "" {
			head += " (" + v + ")"
		}
		lines = append(lines, head)
		if len(ex.Equipment) > 0 {
			lines = append(lines, "   Equipment: "+strings.Join(ex.Equipment, ", "))
		}
		if ex.Instructions != "" {
			lines = append(lines, "   "+ex.Instructions)
		}
	}
	return lines
}
