// Package dashboard shows the user's workout plan, fetching or generating
// it when it is not stored locally.
package dashboard

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/planview"
	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
	"github.com/abhisek/fitplan/internal/ui/layout"
)

const (
	msgPlanGetFailed = "Failed to fetch workout plan"
	msgPlanGenFailed = "Error generating workout plan"
)

// SessionStore is the persisted client state the dashboard reads and writes.
type SessionStore interface {
	LoadSession(ctx context.Context) (*fitness.Session, error)
	LoadPlan(ctx context.Context) (*fitness.WorkoutPlan, error)
	SavePlan(ctx context.Context, plan *fitness.WorkoutPlan) error
}

// PlanAPI fetches and generates plans.
type PlanAPI interface {
	GetPlan(ctx context.Context, id string) (*fitness.WorkoutPlan, error)
	GeneratePlan(ctx context.Context, token string) (*fitness.WorkoutPlan, error)
}

// Deps wires the screen to its collaborators.
type Deps struct {
	Sessions SessionStore
	Plans    PlanAPI
	// Setup builds the setup screen, prefilled from the profile when one
	// exists.
	Setup func(profile *fitness.ProfileRecord) screen.Screen
	// Export writes the plan to path.
	Export    func(path string, plan *fitness.WorkoutPlan) error
	ExportDir string
	// GenerateOnOpen generates a plan when none exists instead of waiting
	// for the user to ask.
	GenerateOnOpen bool
}

// Results carry the id of the dashboard that started the work, so a result
// reaching a different instance is dropped.
type sessionLoadedMsg struct {
	Owner   string
	Session *fitness.Session
	Plan    *fitness.WorkoutPlan
	Err     error
}

type planResultMsg struct {
	Owner string
	Seq   uint64
	Plan  *fitness.WorkoutPlan
	Err   error
}

type exportDoneMsg struct {
	Path string
	Err  error
}

// DashboardScreen implements screen.Screen for the plan viewer.
type DashboardScreen struct {
	id      string
	deps    Deps
	session *fitness.Session
	viewer  *planview.Viewer

	redirected   bool
	disposed     bool
	lastGenerate bool
	notice       string
	noticeErr    bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.StatusProvider = (*DashboardScreen)(nil)
var _ screen.Disposable = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(deps Deps) *DashboardScreen {
	return &DashboardScreen{
		id:     uuid.NewString(),
		deps:   deps,
		viewer: planview.New(),
	}
}

func (d *DashboardScreen) Title() string {
	return "Workout Plan"
}

// Status is shown in the header: the profile's name.
func (d *DashboardScreen) Status() string {
	if d.session == nil {
		return ""
	}
	return d.session.Profile.Name
}

// Viewer exposes the plan viewer state.
func (d *DashboardScreen) Viewer() *planview.Viewer { return d.viewer }

func (d *DashboardScreen) Init() tea.Cmd {
	sessions := d.deps.Sessions
	owner := d.id
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := sessions.LoadSession(ctx)
		if err != nil || sess == nil {
			return sessionLoadedMsg{Owner: owner, Err: err}
		}
		plan, err := sessions.LoadPlan(ctx)
		return sessionLoadedMsg{Owner: owner, Session: sess, Plan: plan, Err: err}
	}
}

// Dispose abandons any in-flight load. Results that arrive afterwards are
// neither shown nor saved.
func (d *DashboardScreen) Dispose() {
	d.disposed = true
	d.viewer.Abandon()
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	switch d.viewer.State() {
	case planview.StateLoaded:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Week"},
			layout.KeyHint{Key: "↑↓", Description: "Day"},
			layout.KeyHint{Key: "Enter", Description: "Expand"},
			layout.KeyHint{Key: "g", Description: "New plan"},
			layout.KeyHint{Key: "e", Description: "Export"},
		)
	case planview.StateNotFound:
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Generate plan"})
	case planview.StateFailed:
		hints = append(hints,
			layout.KeyHint{Key: "r", Description: "Retry"},
			layout.KeyHint{Key: "g", Description: "Generate plan"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "p", Description: "Edit profile"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		if msg.Owner != d.id || d.disposed {
			return d, nil
		}
		return d.handleSessionLoaded(msg)

	case planResultMsg:
		if msg.Owner != d.id || d.disposed {
			log.WithField("seq", msg.Seq).Debug("ignoring plan result for another dashboard")
			return d, nil
		}
		if !d.viewer.Resolve(msg.Seq, msg.Plan, msg.Err) {
			log.WithField("seq", msg.Seq).Debug("ignoring stale plan result")
			return d, nil
		}
		if msg.Err != nil || msg.Plan == nil {
			return d, nil
		}
		return d, d.savePlan(msg.Plan)

	case exportDoneMsg:
		if msg.Err != nil {
			d.notice = "Export failed: " + msg.Err.Error()
			d.noticeErr = true
		} else {
			d.notice = "Plan exported to " + msg.Path
			d.noticeErr = false
		}
		return d, nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) handleSessionLoaded(msg sessionLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Session == nil {
		if msg.Err != nil {
			log.WithError(msg.Err).Warn("load session")
		}
		return d, d.redirectToSetup()
	}
	d.session = msg.Session
	if msg.Err != nil {
		log.WithError(msg.Err).Warn("load stored plan")
	}
	if msg.Plan != nil {
		d.viewer.Show(msg.Plan)
		return d, nil
	}
	return d, d.load(d.deps.GenerateOnOpen)
}

func (d *DashboardScreen) redirectToSetup() tea.Cmd {
	if d.redirected || d.deps.Setup == nil {
		return nil
	}
	d.redirected = true
	var profile *fitness.ProfileRecord
	if d.session != nil {
		p := d.session.Profile
		profile = &p
	}
	next := d.deps.Setup(profile)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// load starts a GET (or POST when generate is set) for the session's plan.
func (d *DashboardScreen) load(generate bool) tea.Cmd {
	if d.session == nil {
		return nil
	}
	seq := d.viewer.Begin(generate)
	d.lastGenerate = generate
	token := d.session.Token
	plans := d.deps.Plans
	owner := d.id
	return func() tea.Msg {
		ctx := context.Background()
		var plan *fitness.WorkoutPlan
		var err error
		if generate {
			plan, err = plans.GeneratePlan(ctx, token)
		} else {
			plan, err = plans.GetPlan(ctx, token)
		}
		return planResultMsg{Owner: owner, Seq: seq, Plan: plan, Err: err}
	}
}

func (d *DashboardScreen) savePlan(plan *fitness.WorkoutPlan) tea.Cmd {
	sessions := d.deps.Sessions
	return func() tea.Msg {
		if err := sessions.SavePlan(context.Background(), plan); err != nil {
			log.WithError(err).Warn("save workout plan")
		}
		return nil
	}
}

func (d *DashboardScreen) export() tea.Cmd {
	plan := d.viewer.Plan()
	if plan == nil || d.deps.Export == nil {
		return nil
	}
	path := filepath.Join(d.deps.ExportDir, fmt.Sprintf("fitplan-%d.xlsx", plan.ID))
	export := d.deps.Export
	return func() tea.Msg {
		return exportDoneMsg{Path: path, Err: export(path, plan)}
	}
}

func (d *DashboardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "p" {
		return d, d.redirectToSetup()
	}
	if d.viewer.State() == planview.StateLoading {
		return d, nil
	}

	switch key {
	case "g":
		if d.viewer.CanGenerate() {
			d.notice = ""
			return d, d.load(true)
		}
	case "r":
		if d.viewer.State() == planview.StateFailed {
			return d, d.load(d.lastGenerate)
		}
	}

	if d.viewer.State() != planview.StateLoaded {
		return d, nil
	}
	switch key {
	case "left", "h", "shift+tab":
		d.viewer.PrevWeek()
	case "right", "l", "tab":
		d.viewer.NextWeek()
	case "up", "k":
		d.viewer.MoveDay(-1)
	case "down", "j":
		d.viewer.MoveDay(1)
	case "enter", "space":
		d.viewer.ToggleDay()
	case "e":
		return d, d.export()
	}
	return d, nil
}
