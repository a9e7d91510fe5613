package fitness

import (
	"strings"

	"go.uber.org/multierr"
)

// Profile is the body sent to create a profile. Option ids are resolved to
// display names before sending.
type Profile struct {
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	FitnessGoal     string   `json:"fitnessGoal"`
	Equipment       []string `json:"equipment"`
	WorkoutTypes    []string `json:"workoutTypes"`
	ExperienceLevel string   `json:"experienceLevel"`
}

// ProfileRecord is the server's canonical copy of a created profile.
type ProfileRecord struct {
	ID              int64    `json:"id,omitempty"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	FitnessGoal     string   `json:"fitness_goal"`
	Equipment       []string `json:"equipment"`
	WorkoutTypes    []string `json:"workout_types"`
	ExperienceLevel string   `json:"experience_level"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

// Session is what a successful profile submission leaves behind.
type Session struct {
	Token   string        `json:"session_token"`
	Profile ProfileRecord `json:"profile"`
}

// ValidateSubmission checks everything that can be checked without the
// backend. It returns a *ValidationError listing every problem, or nil.
func ValidateSubmission(name string, age int, sel SelectionSet) error {
	var err error
	if strings.TrimSpace(name) == "" {
		err = multierr.Append(err, ErrNameRequired)
	}
	if age <= 0 {
		err = multierr.Append(err, ErrInvalidAge)
	}
	if sel.Count(CategoryGoal) < 1 {
		err = multierr.Append(err, ErrNoGoal)
	}
	if sel.Count(CategoryWorkout) != 1 {
		err = multierr.Append(err, ErrNoWorkout)
	}
	if sel.Count(CategoryLevel) != 1 {
		err = multierr.Append(err, ErrNoLevel)
	}
	if err != nil {
		return NewValidationError(err)
	}
	return nil
}

// BuildProfile resolves the selection against cat and assembles the
// creation request. Ids missing from the catalog are sent as-is.
func BuildProfile(name string, age int, sel SelectionSet, cat *Catalog) Profile {
	p := Profile{
		Name:         strings.TrimSpace(name),
		Age:          age,
		Equipment:    []string{},
		WorkoutTypes: []string{},
	}
	if len(sel.Goals) > 0 {
		p.FitnessGoal = resolveName(cat, CategoryGoal, sel.Goals[0])
	}
	for _, id := range sel.Equipment {
		p.Equipment = append(p.Equipment, resolveName(cat, CategoryEquipment, id))
	}
	if sel.Workout != "" {
		p.WorkoutTypes = append(p.WorkoutTypes, resolveName(cat, CategoryWorkout, sel.Workout))
	}
	if sel.Level != "" {
		p.ExperienceLevel = resolveName(cat, CategoryLevel, sel.Level)
	}
	return p
}

func resolveName(cat *Catalog, c Category, id string) string {
	if o, ok := cat.Lookup(c, id); ok {
		return o.Name
	}
	return id
}
