package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
	"github.com/abhisek/fitplan/internal/ui/components"
	"github.com/abhisek/fitplan/internal/ui/layout"
	"github.com/abhisek/fitplan/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

type tickMsg time.Time

// Options configures the welcome screen.
type Options struct {
	// Setup builds the profile setup screen.
	Setup func() screen.Screen
	// Dashboard builds the plan dashboard. Nil when no session is stored.
	Dashboard func() screen.Screen
	// Name greets a returning user.
	Name string
}

// WelcomeScreen shows a short splash, then offers to build a profile or
// open the saved plan.
type WelcomeScreen struct {
	opts         Options
	menu         components.Menu
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New(opts Options) *WelcomeScreen {
	w := &WelcomeScreen{opts: opts}
	items := []components.MenuItem{
		{Label: "View my workout plan", Hint: "weekly schedule", Action: w.open(opts.Dashboard), Disabled: opts.Dashboard == nil},
		{Label: "Build a new profile", Hint: "goals, equipment and level", Action: w.open(opts.Setup), Disabled: opts.Setup == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	w.menu = components.NewMenu(items)
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// The first key during the splash only skips the animation.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) open(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		if factory == nil || w.transitioned {
			return nil
		}
		w.transitioned = true
		next := factory()
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
	}

	tagline := "Your plan, your pace."
	if w.opts.Name != "" {
		tagline = "Welcome back, " + w.opts.Name + "!"
	}
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(tagline))

	if w.elapsed >= totalDur {
		sections = append(sections, "", w.menu.View())
	} else {
		sections = append(sections, "", theme.Hint.Render("press any key"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
