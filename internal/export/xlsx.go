// Package export writes workout plans to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/fitplan/internal/fitness"
)

var header = []any{"Day", "Focus", "Exercise", "Type", "Sets", "Reps", "Duration", "Equipment", "Instructions"}

// SheetName returns the sheet holding week n.
func SheetName(n int) string { return fmt.Sprintf("Week %d", n) }

// WritePlanXLSX writes plan as an .xlsx workbook with one sheet per week.
func WritePlanXLSX(w io.Writer, plan *fitness.WorkoutPlan) error {
	f, err := buildWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SavePlanXLSX writes plan to path.
func SavePlanXLSX(path string, plan *fitness.WorkoutPlan) error {
	f, err := buildWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func buildWorkbook(plan *fitness.WorkoutPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	const defaultSheet = "Sheet1"

	weeks := plan.PlanData.Weeks
	if len(weeks) == 0 {
		sw, err := f.NewStreamWriter(defaultSheet)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow("A1", header); err != nil {
			return nil, err
		}
		return f, sw.Flush()
	}

	for i, week := range weeks {
		name := SheetName(week.WeekNumber)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeWeek(f, name, week); err != nil {
			return nil, fmt.Errorf("week %d: %w", week.WeekNumber, err)
		}
	}
	return f, nil
}

func writeWeek(f *excelize.File, sheet string, week fitness.Week) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	row := 2
	for _, day := range week.Days {
		var rows [][]any
		if day.IsRest() {
			rows = append(rows, []any{day.DayNumber, "Rest Day", "", "", "", "", "", "", ""})
		}
		for _, ex := range day.Exercises {
			var sets any = ""
			if ex.Sets > 0 {
				sets = ex.Sets
			}
			rows = append(rows, []any{
				day.DayNumber, day.Focus, ex.Name, ex.Type, sets, ex.Reps, ex.Duration,
				strings.Join(ex.Equipment, ", "), ex.Instructions,
			})
		}
		for _, r := range rows {
			cellAddr, _ := excelize.CoordinatesToCellName(1, row)
			if err := sw.SetRow(cellAddr, r); err != nil {
				return err
			}
			row++
		}
	}
	return sw.Flush()
}
