package fitness

import (
	"encoding/json"
	"slices"
)

// Option is a single selectable entry in the catalog.
type Option struct {
	ID          string
	Name        string
	Category    Category
	Description string
	Icon        string

	// Category specific guidance. At most one of these is set,
	// depending on Category.
	AgeNotes        string
	SafetyNotes     string
	IntensityNote   string
	ProgressionNote string

	// Custom marks options the user typed in rather than picked
	// from the backend catalog.
	Custom bool
}

// Note returns the category specific guidance for the option.
func (o Option) Note() string {
	switch o.Category {
	case CategoryGoal:
		return o.AgeNotes
	case CategoryEquipment:
		return o.SafetyNotes
	case CategoryWorkout:
		return o.IntensityNote
	case CategoryLevel:
		return o.ProgressionNote
	}
	return ""
}

// NoteLabel names the guidance returned by Note.
func (o Option) NoteLabel() string {
	switch o.Category {
	case CategoryGoal:
		return "Age-specific notes"
	case CategoryEquipment:
		return "Safety"
	case CategoryWorkout:
		return "Intensity"
	case CategoryLevel:
		return "Progression"
	}
	return ""
}

// Catalog holds the option lists returned by the backend.
type Catalog struct {
	Goals     []Option
	Equipment []Option
	Workouts  []Option
	Levels    []Option
}

// Options returns the options for a category.
func (c *Catalog) Options(cat Category) []Option {
	if c == nil {
		return nil
	}
	switch cat {
	case CategoryGoal:
		return c.Goals
	case CategoryEquipment:
		return c.Equipment
	case CategoryWorkout:
		return c.Workouts
	case CategoryLevel:
		return c.Levels
	}
	return nil
}

func (c *Catalog) setOptions(cat Category, opts []Option) {
	switch cat {
	case CategoryGoal:
		c.Goals = opts
	case CategoryEquipment:
		c.Equipment = opts
	case CategoryWorkout:
		c.Workouts = opts
	case CategoryLevel:
		c.Levels = opts
	}
}

// Lookup finds an option by id within a category.
func (c *Catalog) Lookup(cat Category, id string) (Option, bool) {
	for _, o := range c.Options(cat) {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Empty reports whether the catalog has no options at all.
func (c *Catalog) Empty() bool {
	if c == nil {
		return true
	}
	return len(c.Goals)+len(c.Equipment)+len(c.Workouts)+len(c.Levels) == 0
}

// Add appends an option to its category unless an option with the same id
// is already present.
func (c *Catalog) Add(o Option) {
	if _, ok := c.Lookup(o.Category, o.ID); ok {
		return
	}
	c.setOptions(o.Category, append(slices.Clone(c.Options(o.Category)), o))
}

// Retain returns a copy of c that also contains every option selected in
// sel that prev knew about but c no longer lists. A refreshed catalog
// therefore never drops something the user already picked.
func (c *Catalog) Retain(prev *Catalog, sel SelectionSet) *Catalog {
	out := c.Clone()
	if prev == nil {
		return out
	}
	for _, cat := range Categories {
		for _, id := range sel.IDs(cat) {
			if _, ok := out.Lookup(cat, id); ok {
				continue
			}
			if o, ok := prev.Lookup(cat, id); ok {
				out.Add(o)
			}
		}
	}
	return out
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return &Catalog{}
	}
	return &Catalog{
		Goals:     slices.Clone(c.Goals),
		Equipment: slices.Clone(c.Equipment),
		Workouts:  slices.Clone(c.Workouts),
		Levels:    slices.Clone(c.Levels),
	}
}

type wireOption struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Description             string `json:"description,omitempty"`
	Icon                    string `json:"icon,omitempty"`
	AgeSpecificNotes        string `json:"age_specific_notes,omitempty"`
	SafetyConsiderations    string `json:"safety_considerations,omitempty"`
	IntensityRecommendation string `json:"intensity_recommendation,omitempty"`
	ProgressionTimeline     string `json:"progression_timeline,omitempty"`
	Custom                  bool   `json:"custom,omitempty"`
}

type wireCatalog struct {
	FitnessGoals     []wireOption `json:"fitness_goals"`
	EquipmentOptions []wireOption `json:"equipment_options"`
	WorkoutTypes     []wireOption `json:"workout_types"`
	ExperienceLevels []wireOption `json:"experience_levels"`
}

func toWire(opts []Option) []wireOption {
	out := make([]wireOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, wireOption{
			ID:                      o.ID,
			Name:                    o.Name,
			Description:             o.Description,
			Icon:                    o.Icon,
			AgeSpecificNotes:        o.AgeNotes,
			SafetyConsiderations:    o.SafetyNotes,
			IntensityRecommendation: o.IntensityNote,
			ProgressionTimeline:     o.ProgressionNote,
			Custom:                  o.Custom,
		})
	}
	return out
}

func fromWire(cat Category, opts []wireOption) []Option {
	out := make([]Option, 0, len(opts))
	for _, w := range opts {
		out = append(out, Option{
			ID:              w.ID,
			Name:            w.Name,
			Category:        cat,
			Description:     w.Description,
			Icon:            w.Icon,
			AgeNotes:        w.AgeSpecificNotes,
			SafetyNotes:     w.SafetyConsiderations,
			IntensityNote:   w.IntensityRecommendation,
			ProgressionNote: w.ProgressionTimeline,
			Custom:          w.Custom,
		})
	}
	return out
}

// MarshalJSON encodes the catalog in the backend's wire format.
func (c Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCatalog{
		FitnessGoals:     toWire(c.Goals),
		EquipmentOptions: toWire(c.Equipment),
		WorkoutTypes:     toWire(c.Workouts),
		ExperienceLevels: toWire(c.Levels),
	})
}

// UnmarshalJSON decodes the backend's wire format.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var w wireCatalog
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Goals = fromWire(CategoryGoal, w.FitnessGoals)
	c.Equipment = fromWire(CategoryEquipment, w.EquipmentOptions)
	c.Workouts = fromWire(CategoryWorkout, w.WorkoutTypes)
	c.Levels = fromWire(CategoryLevel, w.ExperienceLevels)
	return nil
}
