package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fitplan/internal/fitness"
)

func TestToggleNotifiesSubscribers(t *testing.T) {
	m := NewManager(fitness.SelectionSet{})
	var seen []fitness.SelectionSet
	m.Subscribe(func(s fitness.SelectionSet) { seen = append(seen, s) })

	require.NoError(t, m.Toggle(fitness.CategoryGoal, "lose_weight"))
	require.NoError(t, m.Toggle(fitness.CategoryLevel, "beginner"))

	require.Len(t, seen, 2)
	assert.Equal(t, []string{"lose_weight"}, seen[0].Goals)
	assert.Empty(t, seen[0].Level)
	assert.Equal(t, "beginner", seen[1].Level)
}

func TestRejectedToggleIsSilent(t *testing.T) {
	m := NewManager(fitness.SelectionSet{})
	calls := 0
	m.Subscribe(func(fitness.SelectionSet) { calls++ })

	assert.Error(t, m.Toggle(fitness.Category("colour"), "red"))
	assert.Zero(t, calls)
}

func TestToggleTwiceRestoresCurrent(t *testing.T) {
	start := fitness.SelectionSet{Goals: []string{"a"}, Workout: "hiit", Level: "beginner"}
	m := NewManager(start)

	require.NoError(t, m.Toggle(fitness.CategoryWorkout, "yoga"))
	assert.Equal(t, "yoga", m.Current().Workout)
	require.NoError(t, m.Toggle(fitness.CategoryWorkout, "yoga"))
	assert.True(t, m.Current().Equal(start))
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager(fitness.SelectionSet{})
	a, b := 0, 0
	unsubA := m.Subscribe(func(fitness.SelectionSet) { a++ })
	m.Subscribe(func(fitness.SelectionSet) { b++ })

	require.NoError(t, m.Toggle(fitness.CategoryGoal, "x"))
	unsubA()
	m.Reset(fitness.SelectionSet{})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.True(t, m.Current().IsEmpty())
}

func TestCurrentIsACopy(t *testing.T) {
	m := NewManager(fitness.SelectionSet{Goals: []string{"a"}})
	c := m.Current()
	c.Goals[0] = "changed"
	assert.Equal(t, []string{"a"}, m.Current().Goals)
}

func TestListenerMayReadManager(t *testing.T) {
	m := NewManager(fitness.SelectionSet{})
	var inside fitness.SelectionSet
	m.Subscribe(func(fitness.SelectionSet) { inside = m.Current() })

	require.NoError(t, m.Toggle(fitness.CategoryEquipment, "bench"))
	assert.Equal(t, []string{"bench"}, inside.Equipment)
}
