package fitness

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// SelectionSet is the user's in-progress choice of options per category.
//
// Goals and Equipment keep insertion order. Workout and Level hold at most
// one id each; the id displaced by the last replacement is remembered so
// that toggling the replacing id again restores it.
type SelectionSet struct {
	Goals     []string
	Equipment []string
	Workout   string
	Level     string

	displacedWorkout string
	displacedLevel   string
}

// Toggle flips optionID within cat.
//
// In a multi-select category the id is inserted or removed. In a
// single-select category a new id replaces the current one, and toggling
// the current id clears it back to whatever it replaced.
func (s *SelectionSet) Toggle(cat Category, optionID string) error {
	if optionID == "" {
		return errors.New("toggle: empty option id")
	}
	switch cat {
	case CategoryGoal:
		s.Goals = toggleMulti(s.Goals, optionID)
	case CategoryEquipment:
		s.Equipment = toggleMulti(s.Equipment, optionID)
	case CategoryWorkout:
		s.Workout, s.displacedWorkout = toggleSingle(s.Workout, s.displacedWorkout, optionID)
	case CategoryLevel:
		s.Level, s.displacedLevel = toggleSingle(s.Level, s.displacedLevel, optionID)
	default:
		return fmt.Errorf("toggle: unknown category %q", cat)
	}
	return nil
}

func toggleMulti(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1)
	}
	return append(slices.Clone(ids), id)
}

func toggleSingle(current, displaced, id string) (string, string) {
	if current == id {
		return displaced, ""
	}
	return id, current
}

// Has reports whether optionID is selected in cat.
func (s SelectionSet) Has(cat Category, optionID string) bool {
	return slices.Contains(s.IDs(cat), optionID)
}

// IDs returns the selected ids for cat.
func (s SelectionSet) IDs(cat Category) []string {
	switch cat {
	case CategoryGoal:
		return s.Goals
	case CategoryEquipment:
		return s.Equipment
	case CategoryWorkout:
		if s.Workout != "" {
			return []string{s.Workout}
		}
	case CategoryLevel:
		if s.Level != "" {
			return []string{s.Level}
		}
	}
	return nil
}

// Count returns how many ids are selected in cat.
func (s SelectionSet) Count(cat Category) int {
	return len(s.IDs(cat))
}

// IsEmpty reports whether nothing is selected.
func (s SelectionSet) IsEmpty() bool {
	return len(s.Goals) == 0 && len(s.Equipment) == 0 && s.Workout == "" && s.Level == ""
}

// Clone returns an independent copy.
func (s SelectionSet) Clone() SelectionSet {
	c := s
	c.Goals = slices.Clone(s.Goals)
	c.Equipment = slices.Clone(s.Equipment)
	return c
}

// Equal compares the visible selection. Multi-select categories compare as
// sets.
func (s SelectionSet) Equal(o SelectionSet) bool {
	return s.Workout == o.Workout &&
		s.Level == o.Level &&
		sameSet(s.Goals, o.Goals) &&
		sameSet(s.Equipment, o.Equipment)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}

type wireSelection struct {
	Goals     []string `json:"goals"`
	Equipment []string `json:"equipment"`
	Workout   *string  `json:"workout"`
	Level     *string  `json:"level"`
}

// MarshalJSON encodes the selection as the backend expects it.
func (s SelectionSet) MarshalJSON() ([]byte, error) {
	w := wireSelection{
		Goals:     s.Goals,
		Equipment: s.Equipment,
	}
	if w.Goals == nil {
		w.Goals = []string{}
	}
	if w.Equipment == nil {
		w.Equipment = []string{}
	}
	if s.Workout != "" {
		w.Workout = &s.Workout
	}
	if s.Level != "" {
		w.Level = &s.Level
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (s *SelectionSet) UnmarshalJSON(data []byte) error {
	var w wireSelection
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = SelectionSet{Goals: w.Goals, Equipment: w.Equipment}
	if w.Workout != nil {
		s.Workout = *w.Workout
	}
	if w.Level != nil {
		s.Level = *w.Level
	}
	return nil
}

// Key returns a stable string identifying the visible selection,
// independent of insertion order.
func (s SelectionSet) Key() string {
	g := slices.Sorted(slices.Values(s.Goals))
	e := slices.Sorted(slices.Values(s.Equipment))
	return fmt.Sprintf("g=%v;e=%v;w=%s;l=%s", g, e, s.Workout, s.Level)
}
