package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/submission"
)

func testCatalog() *fitness.Catalog {
	return &fitness.Catalog{
		Goals:     []fitness.Option{{ID: "build_muscle", Name: "Build Muscle", Category: fitness.CategoryGoal}},
		Equipment: []fitness.Option{{ID: "dumbbells", Name: "Dumbbells", Category: fitness.CategoryEquipment}},
		Workouts:  []fitness.Option{{ID: "strength_training", Name: "Strength Training", Category: fitness.CategoryWorkout}},
		Levels:    []fitness.Option{{ID: "intermediate", Name: "Intermediate", Category: fitness.CategoryLevel}},
	}
}

func validRequest() submission.Request {
	return submission.Request{
		Name: "Sam",
		Age:  28,
		Selection: fitness.SelectionSet{
			Goals:     []string{"build_muscle"},
			Equipment: []string{"dumbbells"},
			Workout:   "strength_training",
			Level:     "intermediate",
		},
		Catalog: testCatalog(),
	}
}

func TestSubmitStoresSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := NewMockProfileAPI(ctrl)
	mockSessions := NewMockSessionSaver(ctrl)

	want := &fitness.Session{Token: "tok", Profile: fitness.ProfileRecord{ID: 9, Name: "Sam"}}
	mockAPI.EXPECT().
		CreateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p fitness.Profile) (*fitness.Session, error) {
			assert.Equal(t, "Sam", p.Name)
			assert.Equal(t, 28, p.Age)
			assert.Equal(t, "Build Muscle", p.FitnessGoal)
			assert.Equal(t, []string{"Dumbbells"}, p.Equipment)
			assert.Equal(t, []string{"Strength Training"}, p.WorkoutTypes)
			assert.Equal(t, "Intermediate", p.ExperienceLevel)
			return want, nil
		})
	mockSessions.EXPECT().SaveSession(gomock.Any(), *want).Return(nil)

	got, err := submission.New(mockAPI, mockSessions).Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

func TestSubmitInvalidSendsNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*submission.Request)
		want   error
	}{
		{"no goals", func(r *submission.Request) { r.Selection.Goals = nil }, fitness.ErrNoGoal},
		{"no workout", func(r *submission.Request) { r.Selection.Workout = "" }, fitness.ErrNoWorkout},
		{"no level", func(r *submission.Request) { r.Selection.Level = "" }, fitness.ErrNoLevel},
		{"no age", func(r *submission.Request) { r.Age = 0 }, fitness.ErrInvalidAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// No EXPECT calls: any request fails the test.
			mockAPI := NewMockProfileAPI(ctrl)
			mockSessions := NewMockSessionSaver(ctrl)

			req := validRequest()
			tt.mutate(&req)
			_, err := submission.New(mockAPI, mockSessions).Submit(context.Background(), req)

			var ve *fitness.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitServerErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := NewMockProfileAPI(ctrl)
	mockSessions := NewMockSessionSaver(ctrl)

	serverErr := &api.ServerError{Op: "create profile", Status: 400, Msg: "Name is required"}
	mockAPI.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(nil, serverErr)

	_, err := submission.New(mockAPI, mockSessions).Submit(context.Background(), validRequest())
	assert.Equal(t, "Name is required", api.UserMessage(err, "fallback"))
}

func TestSubmitMissingTokenIsServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := NewMockProfileAPI(ctrl)
	mockSessions := NewMockSessionSaver(ctrl)

	mockAPI.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).
		Return(&fitness.Session{Profile: fitness.ProfileRecord{Name: "Sam"}}, nil)

	_, err := submission.New(mockAPI, mockSessions).Submit(context.Background(), validRequest())
	var se *api.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Failed to create profile session.", se.Msg)
}

func TestSubmitSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := NewMockProfileAPI(ctrl)
	mockSessions := NewMockSessionSaver(ctrl)

	diskFull := errors.New("disk full")
	mockAPI.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(&fitness.Session{Token: "t"}, nil)
	mockSessions.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(diskFull)

	_, err := submission.New(mockAPI, mockSessions).Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, diskFull)
}
