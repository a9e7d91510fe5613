// Package planview holds the workout plan viewer's state: which load is
// current, which week is shown and which days are expanded.
package planview

import (
	"errors"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/fitness"
)

// State is the viewer's load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateNotFound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateNotFound:
		return "not found"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Viewer is the workout plan viewer state machine:
// Idle -> Loading -> {Loaded, NotFound, Failed}. Generating goes back
// through Loading.
type Viewer struct {
	state      State
	seq        uint64
	generating bool
	plan       *fitness.WorkoutPlan
	err        error

	week int
	day  int
	open map[int]bool
}

// New returns an idle viewer.
func New() *Viewer {
	return &Viewer{open: make(map[int]bool)}
}

// State returns the current load state.
func (v *Viewer) State() State { return v.state }

// Plan returns the loaded plan, if any.
func (v *Viewer) Plan() *fitness.WorkoutPlan { return v.plan }

// Err returns the failure when State is StateFailed.
func (v *Viewer) Err() error { return v.err }

// Generating reports whether the current load is a generation request.
func (v *Viewer) Generating() bool { return v.generating }

// Begin starts a load and returns its sequence number. Only the result
// carrying the latest sequence number is applied.
func (v *Viewer) Begin(generate bool) uint64 {
	v.seq++
	v.state = StateLoading
	v.generating = generate
	v.err = nil
	return v.seq
}

// Abandon discards any in-flight load. Its result will be ignored.
func (v *Viewer) Abandon() {
	v.seq++
	if v.state == StateLoading {
		v.state = StateIdle
		if v.plan != nil {
			v.state = StateLoaded
		}
	}
}

// Resolve applies the outcome of load seq. It reports false when the
// result is stale and was ignored.
func (v *Viewer) Resolve(seq uint64, plan *fitness.WorkoutPlan, err error) bool {
	if seq != v.seq || v.state != StateLoading {
		return false
	}
	v.generating = false
	switch {
	case err == nil && plan != nil:
		v.Show(plan)
	case api.IsNotFound(err):
		v.state = StateNotFound
	case err == nil:
		v.state = StateFailed
		v.err = errors.New("empty workout plan response")
	default:
		v.state = StateFailed
		v.err = err
	}
	return true
}

// Show displays plan directly, e.g. one read from the session store.
func (v *Viewer) Show(plan *fitness.WorkoutPlan) {
	v.state = StateLoaded
	v.plan = plan
	v.err = nil
	v.week = 0
	v.resetDays()
}

// CanGenerate reports whether a generate action should be offered.
func (v *Viewer) CanGenerate() bool {
	return v.state == StateNotFound || v.state == StateLoaded || v.state == StateFailed
}

// Weeks returns the plan's weeks.
func (v *Viewer) Weeks() []fitness.Week {
	if v.plan == nil {
		return nil
	}
	return v.plan.PlanData.Weeks
}

// WeekIndex returns the index of the selected week tab.
func (v *Viewer) WeekIndex() int { return v.week }

// CurrentWeek returns the selected week.
func (v *Viewer) CurrentWeek() (fitness.Week, bool) {
	weeks := v.Weeks()
	if v.week < 0 || v.week >= len(weeks) {
		return fitness.Week{}, false
	}
	return weeks[v.week], true
}

// SelectWeek switches tabs. The first day of the new week starts expanded.
func (v *Viewer) SelectWeek(i int) {
	n := len(v.Weeks())
	if n == 0 {
		return
	}
	v.week = ((i % n) + n) % n
	v.resetDays()
}

// NextWeek moves to the following week tab, wrapping around.
func (v *Viewer) NextWeek() { v.SelectWeek(v.week + 1) }

// PrevWeek moves to the preceding week tab, wrapping around.
func (v *Viewer) PrevWeek() { v.SelectWeek(v.week - 1) }

// DayCursor returns the index of the highlighted day.
func (v *Viewer) DayCursor() int { return v.day }

// MoveDay moves the day cursor by delta, clamped to the week.
func (v *Viewer) MoveDay(delta int) {
	w, ok := v.CurrentWeek()
	if !ok || len(w.Days) == 0 {
		return
	}
	v.day = max(0, min(len(w.Days)-1, v.day+delta))
}

// ToggleDay expands or collapses the highlighted day.
func (v *Viewer) ToggleDay() {
	if _, ok := v.CurrentWeek(); !ok {
		return
	}
	v.open[v.day] = !v.open[v.day]
}

// IsOpen reports whether day i of the current week is expanded.
func (v *Viewer) IsOpen(i int) bool { return v.open[i] }

func (v *Viewer) resetDays() {
	v.day = 0
	v.open = map[int]bool{0: true}
}
