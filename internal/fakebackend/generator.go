package fakebackend

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/abhisek/fitplan/internal/fitness"
)

const (
	planWeeks   = 3
	daysPerWeek = 7
	// Python's naive isoformat, which is what the real backend emits.
	naiveISO = "2006-01-02T15:04:05.000000"
)

var exercisePool = map[string][]string{
	"Strength Training":   {"Goblet Squat", "Bench Press", "Bent-over Row", "Romanian Deadlift", "Overhead Press", "Lunges"},
	"HIIT":                {"Burpees", "Mountain Climbers", "Jump Squats", "High Knees", "Kettlebell Swings"},
	"Cardio":              {"Brisk Walk", "Interval Run", "Cycling", "Jump Rope", "Stair Climb"},
	"Yoga":                {"Sun Salutation", "Warrior II", "Downward Dog", "Pigeon Pose", "Child's Pose"},
	"Pilates":             {"The Hundred", "Roll Up", "Single Leg Stretch", "Swimming", "Side Kick"},
	"Functional Training": {"Farmer's Carry", "Step-ups", "Medicine Ball Slam", "Turkish Get-up"},
	"CrossFit":            {"Thrusters", "Wall Balls", "Box Jumps", "Kettlebell Swings", "Double Unders"},
	"Calisthenics":        {"Push-ups", "Pull-ups", "Dips", "Pistol Squat Progression", "Plank"},
}

var timed = map[string]bool{"Cardio": true, "Yoga": true}

var focusByType = map[string][]string{
	"Strength Training": {"Upper Body", "Lower Body", "Full Body", "Push", "Pull"},
	"Calisthenics":      {"Upper Body", "Core", "Lower Body", "Full Body"},
	"Yoga":              {"Flexibility", "Balance", "Mobility", "Breath and Flow"},
	"Pilates":           {"Core", "Posture", "Flexibility"},
}

// generatePlan builds a plan for profile. Days 3 and 7 of each week are
// rest days.
func generatePlan(f *gofakeit.Faker, profile fitness.ProfileRecord, start time.Time) fitness.WorkoutPlan {
	workout := "Strength Training"
	if len(profile.WorkoutTypes) > 0 {
		if _, ok := exercisePool[profile.WorkoutTypes[0]]; ok {
			workout = profile.WorkoutTypes[0]
		}
	}
	volume := map[string]int{"Beginner": 2, "Intermediate": 3, "Advanced": 4}[profile.ExperienceLevel]
	if volume == 0 {
		volume = 3
	}

	plan := fitness.WorkoutPlan{
		UserProfileID: profile.ID,
		StartDate:     start.Format(naiveISO),
		EndDate:       start.AddDate(0, 0, planWeeks*daysPerWeek).Format(naiveISO),
	}
	for w := 1; w <= planWeeks; w++ {
		week := fitness.Week{WeekNumber: w}
		for d := 1; d <= daysPerWeek; d++ {
			day := fitness.Day{DayNumber: d, Exercises: []fitness.Exercise{}}
			if d == 3 || d == 7 {
				day.Focus = "Rest and Recovery"
				week.Days = append(week.Days, day)
				continue
			}
			day.Focus = focus(f, workout)
			for i := 0; i < volume+1; i++ {
				day.Exercises = append(day.Exercises, exercise(f, workout, volume, w, profile.Equipment))
			}
			week.Days = append(week.Days, day)
		}
		plan.PlanData.Weeks = append(plan.PlanData.Weeks, week)
	}
	return plan
}

func focus(f *gofakeit.Faker, workout string) string {
	if opts, ok := focusByType[workout]; ok {
		return f.RandomString(opts)
	}
	return workout
}

func exercise(f *gofakeit.Faker, workout string, sets, week int, equipment []string) fitness.Exercise {
	ex := fitness.Exercise{
		Name:         f.RandomString(exercisePool[workout]),
		Type:         workout,
		Equipment:    []string{},
		Instructions: strings.TrimSuffix(f.Sentence(10), "."),
	}
	ex.Instructions += "."
	if timed[workout] {
		ex.Duration = fmt.Sprintf("%d minutes", f.Number(5, 10)+week*5)
	} else {
		low := f.Number(6, 10)
		ex.Sets = sets
		ex.Reps = fmt.Sprintf("%d-%d", low, low+2+week)
	}
	if len(equipment) > 0 && f.Bool() {
		ex.Equipment = append(ex.Equipment, f.RandomString(equipment))
	}
	return ex
}
