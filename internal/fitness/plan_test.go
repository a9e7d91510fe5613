package fitness

import "testing"

func TestDayTitle(t *testing.T) {
	tests := []struct {
		day  Day
		want string
	}{
		{Day{DayNumber: 3}, "Day 3: Rest Day"},
		{Day{DayNumber: 3, Focus: "Recovery"}, "Day 3: Rest Day"},
		{Day{DayNumber: 1, Focus: "Upper Body", Exercises: []Exercise{{Name: "Push-up"}}}, "Day 1: Upper Body"},
	}
	for _, tt := range tests {
		if got := tt.day.Title(); got != tt.want {
			t.Errorf("Title() = %q, want %q", got, tt.want)
		}
	}
}

func TestExerciseVolume(t *testing.T) {
	tests := []struct {
		ex   Exercise
		want string
	}{
		{Exercise{Sets: 3, Reps: "10-12"}, "3 sets x 10-12 reps"},
		{Exercise{Duration: "30 seconds"}, "30 seconds"},
		{Exercise{Sets: 2, Duration: "1 minute"}, "2 sets, 1 minute"},
		{Exercise{}, ""},
	}
	for _, tt := range tests {
		if got := tt.ex.Volume(); got != tt.want {
			t.Errorf("Volume() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-03-01T09:30:00.123456", "2025-03-01T09:30:00Z", "2025-03-01"} {
		got, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if got.Year() != 2025 || got.Month() != 3 || got.Day() != 1 {
			t.Errorf("ParseDate(%q) = %v", s, got)
		}
	}
	if _, err := ParseDate("next tuesday"); err == nil {
		t.Error("expected error for free text")
	}
}

func TestDateRangeFallsBackToRaw(t *testing.T) {
	p := WorkoutPlan{StartDate: "2025-03-01T00:00:00", EndDate: "soon"}
	if got, want := p.DateRange(), "Mar 1, 2025 - soon"; got != want {
		t.Errorf("DateRange() = %q, want %q", got, want)
	}
}
