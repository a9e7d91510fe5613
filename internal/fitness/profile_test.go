package fitness

import (
	"errors"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Goals: []Option{
			{ID: "lose_weight", Name: "Lose Weight", Category: CategoryGoal},
			{ID: "build_muscle", Name: "Build Muscle", Category: CategoryGoal},
		},
		Equipment: []Option{
			{ID: "dumbbells", Name: "Dumbbells", Category: CategoryEquipment},
			{ID: "bench", Name: "Bench", Category: CategoryEquipment},
		},
		Workouts: []Option{
			{ID: "hiit", Name: "HIIT", Category: CategoryWorkout},
		},
		Levels: []Option{
			{ID: "beginner", Name: "Beginner", Category: CategoryLevel},
		},
	}
}

func TestValidateSubmission(t *testing.T) {
	complete := SelectionSet{Goals: []string{"lose_weight"}, Workout: "hiit", Level: "beginner"}

	tests := []struct {
		name    string
		user    string
		age     int
		sel     SelectionSet
		wantErr []error
	}{
		{"complete", "Ana", 30, complete, nil},
		{"no goals", "Ana", 30, SelectionSet{Workout: "hiit", Level: "beginner"}, []error{ErrNoGoal}},
		{"no workout", "Ana", 30, SelectionSet{Goals: []string{"g"}, Level: "beginner"}, []error{ErrNoWorkout}},
		{"no level", "Ana", 30, SelectionSet{Goals: []string{"g"}, Workout: "hiit"}, []error{ErrNoLevel}},
		{"blank name", "  ", 30, complete, []error{ErrNameRequired}},
		{"zero age", "Ana", 0, complete, []error{ErrInvalidAge}},
		{"everything", "", -1, SelectionSet{}, []error{ErrNameRequired, ErrInvalidAge, ErrNoGoal, ErrNoWorkout, ErrNoLevel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.user, tt.age, tt.sel)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if got := len(ve.Problems()); got != len(tt.wantErr) {
				t.Fatalf("problems = %v, want %d entries", ve.Problems(), len(tt.wantErr))
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("expected %q among %v", want, ve.Problems())
				}
			}
		})
	}
}

func TestBuildProfile(t *testing.T) {
	sel := SelectionSet{
		Goals:     []string{"build_muscle", "lose_weight"},
		Equipment: []string{"bench", "custom-rower"},
		Workout:   "hiit",
		Level:     "beginner",
	}
	p := BuildProfile(" Ana ", 41, sel, testCatalog())

	if p.Name != "Ana" || p.Age != 41 {
		t.Errorf("name/age = %q/%d", p.Name, p.Age)
	}
	if p.FitnessGoal != "Build Muscle" {
		t.Errorf("FitnessGoal = %q, want first selected goal name", p.FitnessGoal)
	}
	if len(p.Equipment) != 2 || p.Equipment[0] != "Bench" || p.Equipment[1] != "custom-rower" {
		t.Errorf("Equipment = %v", p.Equipment)
	}
	if len(p.WorkoutTypes) != 1 || p.WorkoutTypes[0] != "HIIT" {
		t.Errorf("WorkoutTypes = %v", p.WorkoutTypes)
	}
	if p.ExperienceLevel != "Beginner" {
		t.Errorf("ExperienceLevel = %q", p.ExperienceLevel)
	}
}
