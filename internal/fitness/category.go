package fitness

import "fmt"

// Category groups options and decides how selections within it behave.
type Category string

const (
	CategoryGoal      Category = "goal"
	CategoryEquipment Category = "equipment"
	CategoryWorkout   Category = "workout"
	CategoryLevel     Category = "level"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryGoal, CategoryEquipment, CategoryWorkout, CategoryLevel}

// SingleSelect reports whether the category holds at most one option.
func (c Category) SingleSelect() bool {
	return c == CategoryWorkout || c == CategoryLevel
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGoal, CategoryEquipment, CategoryWorkout, CategoryLevel:
		return true
	}
	return false
}

// Label returns the heading shown above the category's options.
func (c Category) Label() string {
	switch c {
	case CategoryGoal:
		return "Fitness Goals"
	case CategoryEquipment:
		return "Available Equipment"
	case CategoryWorkout:
		return "Workout Type"
	case CategoryLevel:
		return "Experience Level"
	}
	return string(c)
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
