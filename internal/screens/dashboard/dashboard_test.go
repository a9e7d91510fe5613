package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/planview"
	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
)

type memSessions struct {
	session *fitness.Session
	plan    *fitness.WorkoutPlan
	saved   int
}

func (m *memSessions) LoadSession(context.Context) (*fitness.Session, error) { return m.session, nil }
func (m *memSessions) LoadPlan(context.Context) (*fitness.WorkoutPlan, error) { return m.plan, nil }
func (m *memSessions) SavePlan(_ context.Context, p *fitness.WorkoutPlan) error {
	m.saved++
	m.plan = p
	return nil
}

type stubPlans struct {
	gets, generates int
	lastID          string
	plan            *fitness.WorkoutPlan
	getErr, genErr  error
}

func (s *stubPlans) GetPlan(_ context.Context, id string) (*fitness.WorkoutPlan, error) {
	s.gets++
	s.lastID = id
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.plan, nil
}

func (s *stubPlans) GeneratePlan(_ context.Context, token string) (*fitness.WorkoutPlan, error) {
	s.generates++
	s.lastID = token
	if s.genErr != nil {
		return nil, s.genErr
	}
	return s.plan, nil
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "setup" }
func (s *stubScreen) Title() string                           { return "Setup" }

func samplePlan() *fitness.WorkoutPlan {
	return &fitness.WorkoutPlan{
		ID:        7,
		StartDate: "2024-03-04T00:00:00.000000",
		EndDate:   "2024-03-25T00:00:00.000000",
		PlanData: fitness.PlanData{Weeks: []fitness.Week{
			{WeekNumber: 1, Days: []fitness.Day{
				{DayNumber: 1, Focus: "Upper Body", Exercises: []fitness.Exercise{
					{Name: "Push-ups", Sets: 3, Reps: "10-12"},
				}},
				{DayNumber: 2, Focus: "Rest and Recovery"},
			}},
			{WeekNumber: 2, Days: []fitness.Day{
				{DayNumber: 1, Focus: "Lower Body", Exercises: []fitness.Exercise{
					{Name: "Squats", Sets: 3, Reps: "12-14"},
				}},
			}},
		}},
	}
}

func sampleSession() *fitness.Session {
	return &fitness.Session{
		Token: "tok-123",
		Profile: fitness.ProfileRecord{
			ID: 1, Name: "Sam", Age: 30,
			FitnessGoal: "Build Muscle", ExperienceLevel: "Beginner",
			WorkoutTypes: []string{"Strength Training"},
		},
	}
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// start runs Init and feeds its result back, returning the follow-up command.
func start(d *DashboardScreen) tea.Cmd {
	_, cmd := d.Update(d.Init()())
	return cmd
}

func TestStoredPlanShowsWithoutFetch(t *testing.T) {
	sessions := &memSessions{session: sampleSession(), plan: samplePlan()}
	plans := &stubPlans{}
	d := New(Deps{Sessions: sessions, Plans: plans})

	if cmd := start(d); cmd != nil {
		t.Error("a stored plan should not trigger a fetch")
	}
	if d.Viewer().State() != planview.StateLoaded {
		t.Fatalf("expected loaded, got %s", d.Viewer().State())
	}
	if plans.gets+plans.generates != 0 {
		t.Error("backend should not be called")
	}
	view := d.View(100, 30)
	for _, want := range []string{"Week 1", "Week 2", "Mar 4, 2024 - Mar 25, 2024", "Sam"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if d.Status() != "Sam" {
		t.Errorf("status = %q", d.Status())
	}
}

func TestNoSessionRedirectsToSetup(t *testing.T) {
	calls := 0
	d := New(Deps{
		Sessions: &memSessions{},
		Plans:    &stubPlans{},
		Setup: func(p *fitness.ProfileRecord) screen.Screen {
			calls++
			if p != nil {
				t.Error("no profile should be passed without a session")
			}
			return &stubScreen{}
		},
	})

	cmd := start(d)
	if cmd == nil {
		t.Fatal("expected a redirect command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if again := d.redirectToSetup(); again != nil {
		t.Error("redirect should only happen once")
	}
	if calls != 1 {
		t.Errorf("setup factory called %d times", calls)
	}
}

func TestNotFoundOffersGenerateWithoutError(t *testing.T) {
	plans := &stubPlans{getErr: &api.NotFoundError{Resource: "workout plan"}}
	d := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: plans})

	cmd := start(d)
	if cmd == nil {
		t.Fatal("expected a plan fetch")
	}
	d.Update(cmd())

	if plans.gets != 1 || plans.lastID != "tok-123" {
		t.Fatalf("expected one GET for the session token, got %d for %q", plans.gets, plans.lastID)
	}
	if d.Viewer().State() != planview.StateNotFound {
		t.Fatalf("expected not found, got %s", d.Viewer().State())
	}
	view := d.View(100, 30)
	if !strings.Contains(view, "Generate Plan") {
		t.Error("not found view should offer to generate")
	}
	if strings.Contains(view, msgPlanGetFailed) {
		t.Error("not found should not render as an error")
	}
}

func TestGenerateSavesPlan(t *testing.T) {
	sessions := &memSessions{session: sampleSession()}
	plans := &stubPlans{getErr: &api.NotFoundError{Resource: "workout plan"}, plan: samplePlan()}
	d := New(Deps{Sessions: sessions, Plans: plans})
	d.Update(start(d)())

	_, cmd := d.Update(key("g"))
	if cmd == nil {
		t.Fatal("expected a generate command")
	}
	if !d.Viewer().Generating() {
		t.Error("viewer should be generating")
	}
	if !strings.Contains(d.View(100, 30), "Generating your workout plan") {
		t.Error("expected a generating message")
	}

	_, save := d.Update(cmd())
	if plans.generates != 1 {
		t.Fatalf("expected one generate call, got %d", plans.generates)
	}
	if d.Viewer().State() != planview.StateLoaded {
		t.Fatalf("expected loaded, got %s", d.Viewer().State())
	}
	if save == nil {
		t.Fatal("expected the plan to be saved")
	}
	save()
	if sessions.saved != 1 || sessions.plan == nil {
		t.Error("plan was not persisted")
	}
}

func TestGenerateOnOpen(t *testing.T) {
	plans := &stubPlans{plan: samplePlan()}
	d := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: plans, GenerateOnOpen: true})

	d.Update(start(d)())
	if plans.generates != 1 || plans.gets != 0 {
		t.Errorf("expected a generate on open, got gets=%d generates=%d", plans.gets, plans.generates)
	}
}

func TestStaleResultIgnored(t *testing.T) {
	plans := &stubPlans{getErr: &api.NotFoundError{Resource: "workout plan"}}
	d := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: plans})
	first := start(d)

	// Keys that would start another load are ignored while one is in flight.
	plans.getErr = nil
	plans.plan = samplePlan()
	_, second := d.Update(key("g"))
	if second != nil {
		t.Fatal("generate should wait while loading")
	}
	d.Update(planResultMsg{Owner: d.id, Seq: 999, Plan: samplePlan()})
	if d.Viewer().State() != planview.StateLoading {
		t.Errorf("unknown seq should be ignored, got %s", d.Viewer().State())
	}
	d.Update(first())
	if d.Viewer().State() != planview.StateLoaded {
		t.Errorf("current result should apply, got %s", d.Viewer().State())
	}
}

func TestResultFromAnotherDashboardIgnored(t *testing.T) {
	oldPlan := samplePlan()
	oldPlan.ID = 111
	first := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: &stubPlans{plan: oldPlan}})
	oldLoad := start(first)
	first.Dispose()

	fresh := sampleSession()
	fresh.Token = "tok-NEW"
	sessions := &memSessions{session: fresh}
	second := New(Deps{Sessions: sessions, Plans: &stubPlans{getErr: &api.NotFoundError{Resource: "workout plan"}}})
	newLoad := start(second)

	if _, cmd := second.Update(oldLoad()); cmd != nil {
		t.Error("a result from another dashboard should not be saved")
	}
	if second.Viewer().State() != planview.StateLoading {
		t.Fatalf("expected still loading, got %s", second.Viewer().State())
	}
	second.Update(newLoad())
	if second.Viewer().State() != planview.StateNotFound {
		t.Errorf("own result should apply, got %s", second.Viewer().State())
	}
	if sessions.saved != 0 || sessions.plan != nil {
		t.Errorf("nothing should be stored, saved=%d", sessions.saved)
	}
}

func TestDisposeAbandonsInFlightLoad(t *testing.T) {
	sessions := &memSessions{session: sampleSession()}
	d := New(Deps{Sessions: sessions, Plans: &stubPlans{plan: samplePlan()}})
	load := start(d)

	d.Dispose()
	if d.Viewer().State() == planview.StateLoading {
		t.Error("dispose should end the load")
	}
	if _, cmd := d.Update(load()); cmd != nil {
		t.Error("no save after dispose")
	}
	if d.Viewer().State() == planview.StateLoaded {
		t.Error("late result should not be shown")
	}
	if sessions.saved != 0 {
		t.Errorf("saved %d plans after dispose", sessions.saved)
	}
}

func TestEditProfileDisposesDashboard(t *testing.T) {
	sessions := &memSessions{session: sampleSession()}
	d := New(Deps{
		Sessions: sessions,
		Plans:    &stubPlans{plan: samplePlan()},
		Setup:    func(*fitness.ProfileRecord) screen.Screen { return &stubScreen{} },
	})
	load := start(d)

	r := router.New(d)
	_, cmd := d.Update(key("p"))
	if cmd == nil {
		t.Fatal("expected navigation to setup")
	}
	r.Update(cmd())
	if _, ok := r.Active().(*stubScreen); !ok {
		t.Fatalf("expected setup on top, got %T", r.Active())
	}
	if _, cmd := d.Update(load()); cmd != nil || sessions.saved != 0 {
		t.Error("the replaced dashboard should not save a late plan")
	}
}

func TestRestDayRendersRestText(t *testing.T) {
	d := New(Deps{Sessions: &memSessions{session: sampleSession(), plan: samplePlan()}, Plans: &stubPlans{}})
	start(d)

	d.Update(key("down"))
	d.Update(key("enter"))
	view := d.View(100, 30)
	if !strings.Contains(view, "Day 2: Rest Day") {
		t.Error("rest day title missing")
	}
	if !strings.Contains(view, "take time to recover") {
		t.Error("expanded rest day should show rest text")
	}
}

func TestFirstDayStartsExpanded(t *testing.T) {
	d := New(Deps{Sessions: &memSessions{session: sampleSession(), plan: samplePlan()}, Plans: &stubPlans{}})
	start(d)

	if !strings.Contains(d.View(100, 30), "Push-ups") {
		t.Error("first day should list its exercises")
	}
	d.Update(key("enter"))
	if strings.Contains(d.View(100, 30), "Push-ups") {
		t.Error("enter should collapse the day")
	}

	d.Update(key("right"))
	if d.Viewer().WeekIndex() != 1 {
		t.Fatalf("expected week 2, got index %d", d.Viewer().WeekIndex())
	}
	if !strings.Contains(d.View(100, 30), "Squats") {
		t.Error("first day of the new week should be expanded")
	}
}

func TestFailureShowsErrorAndRetries(t *testing.T) {
	plans := &stubPlans{getErr: &api.ServerError{Op: "get plan", Status: 500, Msg: "database down"}}
	d := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: plans})
	d.Update(start(d)())

	if d.Viewer().State() != planview.StateFailed {
		t.Fatalf("expected failed, got %s", d.Viewer().State())
	}
	if !strings.Contains(d.View(100, 30), "database down") {
		t.Error("server message should be shown")
	}

	plans.getErr = nil
	plans.plan = samplePlan()
	_, cmd := d.Update(key("r"))
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	d.Update(cmd())
	if plans.gets != 2 {
		t.Errorf("expected a second GET, got %d", plans.gets)
	}
	if d.Viewer().State() != planview.StateLoaded {
		t.Errorf("expected loaded after retry, got %s", d.Viewer().State())
	}
}

func TestNetworkFailureUsesFriendlyMessage(t *testing.T) {
	plans := &stubPlans{genErr: &api.NetworkError{Op: "generate plan", Err: errors.New("dial tcp: refused")}}
	d := New(Deps{Sessions: &memSessions{session: sampleSession()}, Plans: plans, GenerateOnOpen: true})
	d.Update(start(d)())

	view := d.View(100, 30)
	if !strings.Contains(view, "Could not reach the server") {
		t.Error("expected the network message")
	}
	if strings.Contains(view, "dial tcp") {
		t.Error("raw transport errors should not be shown")
	}
}

func TestExportWritesToExportDir(t *testing.T) {
	var gotPath string
	d := New(Deps{
		Sessions:  &memSessions{session: sampleSession(), plan: samplePlan()},
		Plans:     &stubPlans{},
		ExportDir: "/tmp/plans",
		Export: func(path string, _ *fitness.WorkoutPlan) error {
			gotPath = path
			return nil
		},
	})
	start(d)

	_, cmd := d.Update(key("e"))
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	d.Update(cmd())
	want := filepath.Join("/tmp/plans", "fitplan-7.xlsx")
	if gotPath != want {
		t.Errorf("export path = %q, want %q", gotPath, want)
	}
	if !strings.Contains(d.View(100, 30), "Plan exported to") {
		t.Error("expected an export notice")
	}
}

func TestEditProfilePassesProfile(t *testing.T) {
	var got *fitness.ProfileRecord
	d := New(Deps{
		Sessions: &memSessions{session: sampleSession(), plan: samplePlan()},
		Plans:    &stubPlans{},
		Setup: func(p *fitness.ProfileRecord) screen.Screen {
			got = p
			return &stubScreen{}
		},
	})
	start(d)

	_, cmd := d.Update(key("p"))
	if cmd == nil {
		t.Fatal("expected navigation to setup")
	}
	if got == nil || got.Name != "Sam" {
		t.Errorf("expected the stored profile, got %+v", got)
	}
}
