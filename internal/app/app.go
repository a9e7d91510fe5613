// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/config"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/refresh"
	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
	"github.com/abhisek/fitplan/internal/screens/dashboard"
	"github.com/abhisek/fitplan/internal/screens/setup"
	"github.com/abhisek/fitplan/internal/screens/welcome"
	"github.com/abhisek/fitplan/internal/ui/layout"
)

// Options holds the dependencies the screens need.
type Options struct {
	Config    config.Config
	Sessions  dashboard.SessionStore
	Plans     dashboard.PlanAPI
	Catalog   setup.CatalogSource
	Submitter setup.Submitter
	// Export writes a plan to a file. Nil disables export.
	Export    func(path string, plan *fitness.WorkoutPlan) error
	ExportDir string
}

// screens builds screens that navigate to each other.
type screens struct {
	opts Options
}

func (s screens) setup(profile *fitness.ProfileRecord) screen.Screen {
	cfg := s.opts.Config
	deps := setup.Deps{
		Catalog:        s.opts.Catalog,
		Submitter:      s.opts.Submitter,
		Dashboard:      s.dashboard,
		Refresh:        refresh.Config{Window: cfg.Refresh.Window},
		RefreshEnabled: cfg.Refresh.Enabled,
		Shuffle:        cfg.Layout.Shuffle,
		Seed:           cfg.Layout.Seed,
	}
	if profile != nil {
		deps.Name = profile.Name
		deps.Age = profile.Age
	}
	return setup.New(deps)
}

func (s screens) dashboard() screen.Screen {
	return dashboard.New(dashboard.Deps{
		Sessions:       s.opts.Sessions,
		Plans:          s.opts.Plans,
		Setup:          s.setup,
		Export:         s.opts.Export,
		ExportDir:      s.opts.ExportDir,
		GenerateOnOpen: s.opts.Config.Plan.GenerateOnOpen,
	})
}

// welcome builds the first screen. A stored session enables the dashboard
// entry.
func (s screens) welcome(sess *fitness.Session) screen.Screen {
	opts := welcome.Options{
		Setup: func() screen.Screen { return s.setup(nil) },
	}
	if sess != nil {
		opts.Dashboard = s.dashboard
		opts.Name = sess.Profile.Name
		opts.Setup = func() screen.Screen { return s.setup(&sess.Profile) }
	}
	return welcome.New(opts)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(initial screen.Screen) AppModel {
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.DisposeAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !capturing(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	return m, m.router.Update(msg)
}

func capturing(s screen.Screen) bool {
	c, ok := s.(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if m.router.Depth() > 1 {
		hints = append([]layout.KeyHint{{Key: "Esc", Description: "Back"}}, hints...)
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program on the welcome screen.
func Run(ctx context.Context, opts Options) error {
	sess, err := opts.Sessions.LoadSession(ctx)
	if err != nil {
		log.WithError(err).Warn("load stored session")
	}

	p := tea.NewProgram(newAppModel(screens{opts: opts}.welcome(sess)), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
