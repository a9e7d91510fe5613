package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
	"github.com/abhisek/fitplan/internal/screens/dashboard"
	"github.com/abhisek/fitplan/internal/screens/setup"
	"github.com/abhisek/fitplan/internal/screens/welcome"
	"github.com/abhisek/fitplan/internal/ui/layout"
)

type fakeScreen struct {
	title     string
	status    string
	capturing bool
	disposed  int
}

func (f *fakeScreen) Init() tea.Cmd                           { return nil }
func (f *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return f, nil }
func (f *fakeScreen) View(int, int) string                    { return "body of " + f.title }
func (f *fakeScreen) Title() string                           { return f.title }
func (f *fakeScreen) Status() string                          { return f.status }
func (f *fakeScreen) Dispose()                                { f.disposed++ }
func (f *fakeScreen) CapturingInput() bool                    { return f.capturing }
func (f *fakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "x", Description: "Do the thing"}}
}

type noSessions struct{}

func (noSessions) LoadSession(context.Context) (*fitness.Session, error)  { return nil, nil }
func (noSessions) LoadPlan(context.Context) (*fitness.WorkoutPlan, error) { return nil, nil }
func (noSessions) SavePlan(context.Context, *fitness.WorkoutPlan) error   { return nil }

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestViewShowsStatusAndHints(t *testing.T) {
	m := sized(newAppModel(&fakeScreen{title: "Workout Plan", status: "Sam"}))

	content := m.render()
	for _, want := range []string{"FitPlan", "Workout Plan", "Sam", "Do the thing", "body of Workout Plan"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(content, "Back") {
		t.Error("no back hint at the root screen")
	}
}

func TestTooSmallTerminal(t *testing.T) {
	m := newAppModel(&fakeScreen{title: "x"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "Terminal too small") {
		t.Error("expected the min size message")
	}
}

func TestCtrlCDisposesScreens(t *testing.T) {
	s := &fakeScreen{title: "Setup"}
	m := newAppModel(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if s.disposed != 1 {
		t.Errorf("expected dispose on quit, got %d", s.disposed)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestEscPopsUnlessCapturing(t *testing.T) {
	top := &fakeScreen{title: "Top"}
	m := newAppModel(&fakeScreen{title: "Root"})
	m.router.Push(top)

	top.capturing = true
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc should go to the input while it captures")
		}
	}

	top.capturing = false
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestWelcomeWithoutSession(t *testing.T) {
	sc := screens{opts: Options{Sessions: noSessions{}}}
	w, ok := sc.welcome(nil).(*welcome.WelcomeScreen)
	if !ok {
		t.Fatal("expected the welcome screen")
	}
	if strings.Contains(w.View(100, 30), "Welcome back") {
		t.Error("no greeting without a session")
	}
}

func TestFactoriesBuildScreens(t *testing.T) {
	sc := screens{opts: Options{Sessions: noSessions{}}}
	sess := &fitness.Session{Token: "t", Profile: fitness.ProfileRecord{Name: "Sam", Age: 41}}

	if _, ok := sc.dashboard().(*dashboard.DashboardScreen); !ok {
		t.Error("dashboard factory should build a dashboard")
	}
	s, ok := sc.setup(&sess.Profile).(*setup.SetupScreen)
	if !ok {
		t.Fatal("setup factory should build a setup screen")
	}
	t.Cleanup(s.Dispose)
	view := s.View(100, 30)
	if !strings.Contains(view, "Sam") || !strings.Contains(view, "41") {
		t.Error("setup should be prefilled from the profile")
	}
}
