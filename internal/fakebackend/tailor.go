package fakebackend

import (
	"slices"

	"github.com/abhisek/fitplan/internal/fitness"
)

// tailor returns the base catalog annotated for age and, when given, the
// user's partial selection.
func tailor(age int, sel fitness.SelectionSet) *fitness.Catalog {
	c := &fitness.Catalog{
		Goals:     slices.Clone(baseGoals),
		Equipment: slices.Clone(baseEquipment),
		Workouts:  slices.Clone(baseWorkouts),
		Levels:    slices.Clone(baseLevels),
	}

	for i := range c.Goals {
		c.Goals[i].AgeNotes = goalNote(age, c.Goals[i].ID)
	}
	for i := range c.Equipment {
		c.Equipment[i].SafetyNotes = safetyNote(age, sel.Level, c.Equipment[i].ID)
	}
	for i := range c.Workouts {
		c.Workouts[i].IntensityNote = intensityNote(age, sel.Level, c.Workouts[i].ID)
	}
	for i := range c.Levels {
		c.Levels[i].ProgressionNote = progressionNote(age, c.Levels[i].ID)
	}

	// Options that suit the current picks float to the top.
	if slices.Contains(sel.Goals, "improve_endurance") || slices.Contains(sel.Goals, "lose_weight") {
		c.Workouts = promote(c.Workouts, "cardio", "hiit")
	}
	if slices.Contains(sel.Goals, "build_muscle") {
		c.Workouts = promote(c.Workouts, "strength_training", "calisthenics")
		c.Equipment = promote(c.Equipment, "dumbbells", "bench", "pull_up_bar")
	}
	if slices.Contains(sel.Goals, "increase_flexibility") {
		c.Workouts = promote(c.Workouts, "yoga", "pilates")
		c.Equipment = promote(c.Equipment, "yoga_mat", "foam_roller")
	}
	return c
}

func promote(opts []fitness.Option, ids ...string) []fitness.Option {
	front := make([]fitness.Option, 0, len(opts))
	rest := make([]fitness.Option, 0, len(opts))
	for _, id := range ids {
		for _, o := range opts {
			if o.ID == id {
				front = append(front, o)
			}
		}
	}
	for _, o := range opts {
		if !slices.Contains(ids, o.ID) {
			rest = append(rest, o)
		}
	}
	return append(front, rest...)
}

func ageBracket(age int) string {
	switch {
	case age <= 0:
		return ""
	case age < 18:
		return "teen"
	case age < 40:
		return "adult"
	case age < 60:
		return "midlife"
	default:
		return "senior"
	}
}

func goalNote(age int, id string) string {
	switch ageBracket(age) {
	case "teen":
		return "Focus on technique and variety; avoid heavy maximal lifts while still growing."
	case "midlife":
		if id == "build_muscle" || id == "tone_body" {
			return "Muscle mass declines after 40; two or three resistance sessions a week help preserve it."
		}
		return "Allow an extra recovery day between demanding sessions."
	case "senior":
		if id == "lose_weight" {
			return "Pair modest calorie reduction with strength work to protect muscle and bone."
		}
		return "Prioritise balance and mobility; check with a doctor before starting something new."
	case "adult":
		return "Most approaches are suitable; progress gradually."
	}
	return ""
}

func safetyNote(age int, level, id string) string {
	switch id {
	case "treadmill":
		if ageBracket(age) == "senior" {
			return "Use the handrails and the safety clip; start at walking pace."
		}
		return "Attach the safety clip and start slowly."
	case "kettlebell", "dumbbells":
		if level == "beginner" {
			return "Learn the movement with a light weight before adding load."
		}
		return "Keep a neutral spine and control the weight through the full range."
	case "pull_up_bar":
		return "Check the bar is secure before every session."
	case "jump_rope":
		if ageBracket(age) == "senior" {
			return "High impact; consider low-impact alternatives if joints are sensitive."
		}
	}
	return "Inspect equipment before use."
}

func intensityNote(age int, level, id string) string {
	high := id == "hiit" || id == "crossfit"
	switch {
	case high && (level == "beginner" || ageBracket(age) == "senior"):
		return "Low to moderate: shorten intervals and lengthen rest."
	case high:
		return "High: limit to two or three sessions per week."
	case level == "advanced":
		return "Moderate to high."
	}
	return "Moderate."
}

func progressionNote(age int, id string) string {
	weeks := map[string]string{
		"beginner":     "Expect noticeable progress in 4 to 6 weeks.",
		"intermediate": "Plan a new progression block every 6 to 8 weeks.",
		"advanced":     "Periodise in 8 to 12 week cycles with deload weeks.",
	}[id]
	if ageBracket(age) == "senior" && weeks != "" {
		weeks += " Progress more gradually and prioritise recovery."
	}
	return weeks
}
